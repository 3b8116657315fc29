package checklist

var (
	// BaseItems must be confirmed before every scan.
	BaseItems = []string{
		"患者氏名・生年月日の確認",
		"検査オーダーと実施部位の一致",
		"前回検査日との間隔確認（被ばく考慮）",
		"体位の確認（仰臥位 / 腕の位置）",
		"金属類・体外物の除去確認",
		"息止め練習の実施（胸部・腹部など）",
	}

	// ContrastItems are confirmed in addition to BaseItems for contrast-enhanced scans.
	ContrastItems = []string{
		"造影剤使用の有無の確認",
		"アレルギー歴の確認",
		"腎機能（eGFR）確認",
		"同意書の有無",
		"造影剤の準備（濃度・量）",
		"注入ラインの確保（適切な太さ・部位）",
	}
)

// State maps a checklist label to whether the operator has confirmed it.
type State map[string]bool

// StateFromChecked builds a State in which every given label is confirmed.
func StateFromChecked(labels []string) State {
	s := make(State, len(labels))
	for _, l := range labels {
		s[l] = true
	}
	return s
}

// Compose returns the ordered checklist for the given mode.
// The returned slice is a fresh copy and may be modified by the caller.
func Compose(mode Mode) []string {
	n := len(BaseItems)
	if mode == WithContrast {
		n += len(ContrastItems)
	}

	items := make([]string, 0, n)
	items = append(items, BaseItems...)
	if mode == WithContrast {
		items = append(items, ContrastItems...)
	}
	return items
}

// Validate reports whether every item is confirmed in state.
// Labels missing from state count as unconfirmed; extra labels are ignored.
func Validate(items []string, state State) bool {
	for _, item := range items {
		if !state[item] {
			return false
		}
	}
	return true
}

// Missing returns the unconfirmed items in checklist order.
func Missing(items []string, state State) []string {
	var missing []string
	for _, item := range items {
		if !state[item] {
			missing = append(missing, item)
		}
	}
	return missing
}
