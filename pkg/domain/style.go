package domain

// Style は生成する写真の雰囲気を指定するプリセットです。
type Style struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// DefaultStyleID はスタイル未指定時に使うプリセットです。
const DefaultStyleID = "rustic"

var styles = []Style{
	{
		ID:     "rustic",
		Name:   "Rustic / Dark",
		Prompt: "The style is rustic and dark, with a moody atmosphere. Shot on a dark wood table with vintage props. Dramatic, low-key lighting.",
	},
	{
		ID:     "modern",
		Name:   "Bright / Modern",
		Prompt: "The style is bright, clean, and modern. Shot on a white marble surface with minimalist plating. Bright, airy, natural lighting.",
	},
	{
		ID:     "social",
		Name:   "Social Media",
		Prompt: "The style is vibrant and eye-catching, perfect for social media. A top-down flat lay shot with colorful backgrounds and props. Bold colors and sharp details.",
	},
}

// Styles は利用可能なスタイルの一覧を返します。
func Styles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// StyleByID は ID に対応するスタイルを返します。空文字の場合はデフォルトを返します。
func StyleByID(id string) (Style, error) {
	if id == "" {
		id = DefaultStyleID
	}
	for _, s := range styles {
		if s.ID == id {
			return s, nil
		}
	}
	return Style{}, ErrUnknownStyle
}
