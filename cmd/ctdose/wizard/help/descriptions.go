package help

// HelpText contains information about a field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help information for all entry form fields
var Texts = map[string]HelpText{
	"contrast": {
		Title:       "造影の有無",
		Description: "造影剤を使用する検査かどうかを選択します。",
		Details:     "造影ありを選ぶと、造影剤に関する6項目がチェックリストに追加されます。",
	},
	"checklist": {
		Title:       "撮影前チェックリスト",
		Description: "確認が済んだ項目を選択します。",
		Details: `x / スペース: 選択の切り替え
すべての項目を確認しないと記録できません。`,
	},
	"patient_id": {
		Title:       "患者ID",
		Description: "病院情報システムの患者IDを入力します。",
		Details:     "入力どおりに記録されます（前後の空白のみ除きます）。",
	},
	"age": {
		Title:       "年齢",
		Description: "撮影時の年齢（0〜120の整数）。",
		Details:     "DICOMから読み込んだ場合は PatientAge (0010,1010) の値です。",
	},
	"gender": {
		Title:       "性別",
		Description: "男 / 女 / その他 から選択します。",
		Details:     "DICOMの PatientSex M/F/O に対応します。",
	},
	"exam_area": {
		Title:       "検査部位",
		Description: "撮影部位を入力します（例: 胸部、腹部、頭部）。",
		Details:     "DICOMから読み込んだ場合は BodyPartExamined (0018,0015) の値です。",
	},
	"ctdivol": {
		Title:       "CTDIvol (mGy)",
		Description: "装置に表示された CTDIvol を入力します。",
		Details:     "0以上の数値。小数点以下は入力どおりに記録されます。",
	},
	"dlp": {
		Title:       "DLP (mGy・cm)",
		Description: "装置に表示された DLP を入力します。",
		Details:     "0以上の数値。線量レポートの合計値を入力してください。",
	},
	"comment": {
		Title:       "コメント",
		Description: "再撮影の理由など、自由記述のメモ。",
		Details:     "空欄でも記録できます。",
	},
}
