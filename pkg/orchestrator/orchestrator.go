package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/shouni/menu-photo-studio/pkg/domain"
	"github.com/shouni/menu-photo-studio/pkg/gallery"
	"github.com/shouni/menu-photo-studio/pkg/gateway"

	"github.com/google/uuid"
)

// State は生成処理の進行状態です。
type State string

const (
	StateIdle       State = "idle"
	StateParsing    State = "parsing"
	StateGenerating State = "generating"
)

// Run はメニュー投入から全料理の生成試行完了までの1サイクルです。
type Run struct {
	ID     string        `json:"id"`
	Style  string        `json:"style"`
	Dishes []domain.Dish `json:"dishes"` // 作成直後のプレースホルダー

	done chan struct{}
}

// Done は全料理の生成を試行し終えると閉じるチャネルを返します。
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Orchestrator はメニュー解析と料理ごとの画像生成を順番に実行します。
type Orchestrator struct {
	gateway gateway.Gateway
	gallery *gallery.Gallery

	mu    sync.Mutex
	state State
	run   *Run
}

// New は依存関係を注入して Orchestrator を初期化します。
func New(gw gateway.Gateway, g *gallery.Gallery) (*Orchestrator, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	if g == nil {
		return nil, fmt.Errorf("gallery is required")
	}
	return &Orchestrator{gateway: gw, gallery: g, state: StateIdle}, nil
}

// Start はメニューを解析し、料理のプレースホルダーを作成してから画像生成をバックグラウンドで開始します。
// 実行中の Run がある間は新しい Run を受け付けません。
func (o *Orchestrator) Start(ctx context.Context, menuText string, style domain.Style) (*Run, error) {
	menuText = strings.TrimSpace(menuText)
	if menuText == "" {
		return nil, domain.ErrEmptyMenu
	}

	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return nil, domain.ErrRunInProgress
	}
	o.state = StateParsing
	o.mu.Unlock()

	o.gallery.Clear()
	items, err := o.gateway.ParseMenu(ctx, menuText)
	if err != nil {
		o.setState(StateIdle)
		return nil, err
	}
	if len(items) == 0 {
		slog.InfoContext(ctx, "メニューから料理が見つかりませんでした")
		o.setState(StateIdle)
		return nil, domain.ErrNoDishesFound
	}

	run := &Run{
		ID:     uuid.NewString(),
		Style:  style.ID,
		Dishes: o.gallery.Reset(items),
		done:   make(chan struct{}),
	}

	o.mu.Lock()
	o.state = StateGenerating
	o.run = run
	o.mu.Unlock()

	slog.InfoContext(ctx, "画像生成を開始します", "run_id", run.ID, "dishes", len(run.Dishes), "style", style.ID)
	go o.generate(context.WithoutCancel(ctx), run, style)

	return run, nil
}

// generate は料理を1品ずつ順番に生成し、結果をその都度ギャラリーへ反映します。
func (o *Orchestrator) generate(ctx context.Context, run *Run, style domain.Style) {
	defer func() {
		o.setState(StateIdle)
		close(run.done)
	}()

	for _, dish := range run.Dishes {
		merge := markFailed()
		img, err := o.gateway.GenerateImage(ctx, dish.Name, dish.Description, style.Prompt)
		if err != nil {
			slog.WarnContext(ctx, "料理画像の生成に失敗しました", "run_id", run.ID, "dish", dish.Name, "error", err)
		} else {
			merge = markGenerated(img)
		}

		if _, err := o.gallery.Update(dish.ID, merge); err != nil {
			slog.WarnContext(ctx, "生成結果を反映できませんでした", "run_id", run.ID, "dish_id", dish.ID, "error", err)
		}
	}
	slog.InfoContext(ctx, "画像生成が完了しました", "run_id", run.ID)
}

// Current は現在の状態と直近の Run を返します。
func (o *Orchestrator) Current() (State, *Run) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state, o.run
}

// Wait は直近の Run の生成ループが終わるまで待ちます。
func (o *Orchestrator) Wait(ctx context.Context) error {
	o.mu.Lock()
	run := o.run
	o.mu.Unlock()
	if run == nil {
		return nil
	}
	select {
	case <-run.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}
