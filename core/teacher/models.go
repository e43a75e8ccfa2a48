package teacher

// Teacher teaches exactly one course; the course code scopes every
// roster operation the teacher performs.
type Teacher struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Course   string `json:"course"`
}
