package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type InviteUserMailData struct {
	Name     string `json:"name"`
	Station  string `json:"station"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	Name       string `json:"name"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"` // minutes
}
