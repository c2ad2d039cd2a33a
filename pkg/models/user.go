package models

// Registrant 报名人填写的联系信息，只做记录，不做校验
type Registrant struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}
