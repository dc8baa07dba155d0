package domain

import (
	"errors"
	"fmt"
)

// ユーザーに提示するエラー。内部の詳細はログにのみ出力し、ここには含めません。
var (
	ErrEmptyMenu         = errors.New("Please paste your menu first.")
	ErrMenuNotUnderstood = errors.New("Could not understand the menu. Please check the format and try again.")
	ErrNoDishesFound     = errors.New("Couldn't find any dishes in your menu. Please try a different format.")
	ErrRunInProgress     = errors.New("Photos are still being generated. Please wait for the current run to finish.")
	ErrUnknownStyle      = errors.New("Unknown style. Please choose one of the available styles.")
	ErrMenuURLRejected   = errors.New("Could not load the menu from that URL.")

	ErrEmptyInstruction = errors.New("Please describe the edit you want to make.")
	ErrNoImage          = errors.New("There is no image to edit yet.")
	ErrEditInProgress   = errors.New("An edit is already being applied to this dish.")
	ErrEditFailed       = errors.New("Failed to apply the edit. Please try again.")
	ErrVersionNotFound  = errors.New("That version does not exist in the history.")
	ErrDishNotFound     = errors.New("Dish not found.")
)

// GenerationFailedMessage は生成に失敗した料理に表示するメッセージです。
const GenerationFailedMessage = "Image generation failed."

const unexpectedMessage = "Something went wrong. Please try again."

// DishError は1品分の画像生成失敗を表します。他の料理の生成には影響しません。
type DishError struct {
	Dish string
}

func (e *DishError) Error() string {
	return fmt.Sprintf("Failed to generate an image for %s.", e.Dish)
}

var userErrors = []error{
	ErrEmptyMenu, ErrMenuNotUnderstood, ErrNoDishesFound, ErrRunInProgress, ErrUnknownStyle, ErrMenuURLRejected,
	ErrEmptyInstruction, ErrNoImage, ErrEditInProgress, ErrEditFailed, ErrVersionNotFound, ErrDishNotFound,
}

// UserMessage はエラーを利用者に見せてよいメッセージに変換します。
// 既知のエラー以外は汎用メッセージに置き換えます。
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var de *DishError
	if errors.As(err, &de) {
		return de.Error()
	}
	for _, known := range userErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return unexpectedMessage
}
