package authdto

// SessionInput đầu vào xác thực phiên làm việc bằng Firebase ID token.
type SessionInput struct {
	IDToken string `json:"idToken" validate:"required"`
}

// UserCreateInput đầu vào tạo người dùng (CRUD back-office).
type UserCreateInput struct {
	Name        string `json:"name" validate:"required,no_xss"`
	Email       string `json:"email" validate:"required,email"`
	FirebaseUID string `json:"firebaseUid" validate:"required"`
	IsAdmin     bool   `json:"isAdmin"`
}

// UserUpdateInput đầu vào cập nhật hồ sơ người dùng.
type UserUpdateInput struct {
	Name      string `json:"name" validate:"omitempty,no_xss"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

// BlockUserInput đầu vào khóa người dùng.
type BlockUserInput struct {
	Email string `json:"email" validate:"required,email"`
	Note  string `json:"note" validate:"required"`
}

// UnBlockUserInput đầu vào mở khóa người dùng.
type UnBlockUserInput struct {
	Email string `json:"email" validate:"required,email"`
}
