package domain

// Notification is an outbound message carrying an encoded single-use token
// to a principal: account verification after registration, or a password
// reset link.
type Notification struct {
	Principal    Principal
	Action       Kind // KindVerify or KindReset
	EncodedToken string
	Origin       string
}
