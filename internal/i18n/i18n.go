// Package i18n holds the localized menu and HUD strings.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Supported language codes.
const (
	English  = "en"
	Japanese = "ja"
)

// Key identifies a UI string.
type Key string

const (
	Title         Key = "title"
	SelectStage   Key = "select_stage"
	Cleared       Key = "cleared"
	NotCleared    Key = "not_cleared"
	HighScore     Key = "high_score"
	Character     Key = "character"
	Change        Key = "change"
	StandardName  Key = "standard_name"
	StandardDesc  Key = "standard_desc"
	AgileName     Key = "agile_name"
	AgileDesc     Key = "agile_desc"
	UnlockHint    Key = "unlock_hint"
	Locked        Key = "locked"
	Settings      Key = "settings"
	LanguageLabel Key = "language"
	DebugMode     Key = "debug_mode"
	On            Key = "on"
	Off           Key = "off"
	Back          Key = "back"
	Score         Key = "score"
	Stage         Key = "stage"
	Paused        Key = "paused"
	FellOff       Key = "fell_off"
	HitByEnemy    Key = "hit_by_enemy"
	StageClear    Key = "stage_clear"
	RestartHint   Key = "restart_hint"
	ContinueHint  Key = "continue_hint"
	MenuHelp      Key = "menu_help"
	GameHelp      Key = "game_help"
	Progress      Key = "progress"
	NoClears      Key = "no_clears"
)

var catalog = map[string]map[Key]string{
	English: {
		Title:         "S T A R H O P",
		SelectStage:   "Select a stage",
		Cleared:       "CLEARED",
		NotCleared:    "not cleared",
		HighScore:     "High score",
		Character:     "Character",
		Change:        "Tab: change",
		StandardName:  "Standard",
		StandardDesc:  "High single jump",
		AgileName:     "Ninja",
		AgileDesc:     "Lower jump, can double jump",
		UnlockHint:    "Clear stages 1-3 to unlock",
		Locked:        "LOCKED",
		Settings:      "Settings",
		LanguageLabel: "Language",
		DebugMode:     "Debug mode",
		On:            "ON",
		Off:           "OFF",
		Back:          "Back",
		Score:         "Score",
		Stage:         "Stage",
		Paused:        "PAUSED",
		FellOff:       "You fell!",
		HitByEnemy:    "Hit by an enemy!",
		StageClear:    "STAGE CLEAR!",
		RestartHint:   "R: retry  Esc: stages",
		ContinueHint:  "Enter: back to stages",
		MenuHelp:      "Up/Down: move  Enter: play  Tab: character  P: progress  Q: quit",
		GameHelp:      "Arrows/AD: move  Space: jump  P: pause  Esc: stages",
		Progress:      "Progress",
		NoClears:      "No clears recorded yet.",
	},
	Japanese: {
		Title:         "ス タ ー ホ ッ プ",
		SelectStage:   "ステージを選択",
		Cleared:       "クリア",
		NotCleared:    "未クリア",
		HighScore:     "ハイスコア",
		Character:     "キャラクター",
		Change:        "Tab: 変更",
		StandardName:  "スタンダード",
		StandardDesc:  "高いジャンプ",
		AgileName:     "忍者",
		AgileDesc:     "低いジャンプ、二段ジャンプ可能",
		UnlockHint:    "ステージ1-3をクリアで解放",
		Locked:        "ロック中",
		Settings:      "設定",
		LanguageLabel: "言語",
		DebugMode:     "デバッグモード",
		On:            "オン",
		Off:           "オフ",
		Back:          "戻る",
		Score:         "スコア",
		Stage:         "ステージ",
		Paused:        "一時停止",
		FellOff:       "落ちてしまった!",
		HitByEnemy:    "敵にやられた!",
		StageClear:    "ステージクリア!",
		RestartHint:   "R: リトライ  Esc: ステージ選択",
		ContinueHint:  "Enter: ステージ選択へ",
		MenuHelp:      "上下: 移動  Enter: プレイ  Tab: キャラ  P: 記録  Q: 終了",
		GameHelp:      "矢印/AD: 移動  Space: ジャンプ  P: 一時停止  Esc: ステージ選択",
		Progress:      "記録",
		NoClears:      "まだクリア記録がありません。",
	},
}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Japanese})

// Normalize maps a user supplied code to a supported one.
// "jp" is accepted for Japanese; anything unknown falls back to English.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "jp" {
		return Japanese
	}
	tag, err := language.Parse(code)
	if err != nil {
		return English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return English
	}
	if idx == 1 {
		return Japanese
	}
	return English
}

// Supported returns the supported language codes in display order.
func Supported() []string {
	return []string{English, Japanese}
}

// DisplayName returns the name of a language in that language.
func DisplayName(code string) string {
	if Normalize(code) == Japanese {
		return "日本語"
	}
	return "English"
}

// Translator looks up strings for one language.
type Translator struct {
	lang string
}

// New returns a Translator for code, normalized.
func New(code string) Translator {
	return Translator{lang: Normalize(code)}
}

// Lang returns the normalized language code.
func (t Translator) Lang() string {
	if t.lang == "" {
		return English
	}
	return t.lang
}

// T returns the string for k, falling back to English and then the key.
func (t Translator) T(k Key) string {
	if s, ok := catalog[t.Lang()][k]; ok {
		return s
	}
	if s, ok := catalog[English][k]; ok {
		return s
	}
	return string(k)
}

// Tf formats the string for k followed by args.
func (t Translator) Tf(k Key, format string, args ...any) string {
	return t.T(k) + fmt.Sprintf(format, args...)
}
