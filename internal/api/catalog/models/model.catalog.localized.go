package models

// LocalizedText chứa nội dung song ngữ Ả Rập / Pháp.
// Storefront hiển thị tiếng Ả Rập mặc định, tiếng Pháp là bản dịch.
type LocalizedText struct {
	Ar string `json:"ar" bson:"ar"` // Nội dung tiếng Ả Rập
	Fr string `json:"fr" bson:"fr"` // Nội dung tiếng Pháp
}

// IsEmpty kiểm tra cả hai ngôn ngữ đều rỗng
func (t LocalizedText) IsEmpty() bool {
	return t.Ar == "" && t.Fr == ""
}
