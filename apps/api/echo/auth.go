package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/karames/unilog/core"
	"github.com/karames/unilog/core/student"
	"github.com/karames/unilog/core/teacher"
)

const (
	roleStudent = "student"
	roleTeacher = "teacher"

	tokenContextKey = "claimsToken"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	Username     string `json:"username,omitempty"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role,omitempty"`
	Course       string `json:"course,omitempty"` // teachers only
}

func configureAuth(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		Claims:        new(Claims),
	}
}

func getStudentClaims(conf *core.Config, s student.Student) *Claims {
	return newClaims(conf, s.ID, s.Username, s.Name, roleStudent, "")
}

func getTeacherClaims(conf *core.Config, t teacher.Teacher) *Claims {
	return newClaims(conf, t.ID, t.Username, t.Name, roleTeacher, t.Course)
}

func newClaims(conf *core.Config, id, username, name, role, course string) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   id,
			Audience:  "UniLog",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		OrigIssuedAt: now.Unix(),
		Username:     username,
		Name:         name,
		Role:         role,
		Course:       course,
	}
}

var errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "authentication failed")

// authenticate checks the credentials against the portal selected by role.
// Passwords are stored and compared verbatim; a wrong-case password fails.
func authenticate(ctx echo.Context, deps ServerDeps, role, username, password string) (*Claims, error) {
	switch role {
	case roleStudent:
		s, err := deps.StudentSvc.GetByUsername(ctx.Request().Context(), username)
		if err != nil {
			if errors.Cause(err) == student.ErrNotFound {
				return nil, errAuthenticationFailed
			}
			return nil, errors.Wrap(err, "finding student by username")
		}
		if s.Password != password {
			return nil, errAuthenticationFailed
		}
		return getStudentClaims(deps.Conf, s), nil

	case roleTeacher:
		t, err := deps.TeacherSvc.GetByUsername(ctx.Request().Context(), username)
		if err != nil {
			if errors.Cause(err) == teacher.ErrNotFound {
				return nil, errAuthenticationFailed
			}
			return nil, errors.Wrap(err, "finding teacher by username")
		}
		if t.Password != password {
			return nil, errAuthenticationFailed
		}
		return getTeacherClaims(deps.Conf, t), nil
	}
	return nil, errAuthenticationFailed
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

type authApi struct {
	deps ServerDeps
}

func registerAuthAPI(g *echo.Group, deps ServerDeps) {
	api := authApi{deps: deps}
	g.POST("/auth/login", api.login)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	claims, err := authenticate(ctx, api.deps, data.Role, data.Username, data.Password)
	if err != nil {
		return err
	}
	token, err := GenerateToken(api.deps.Conf, claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{
		Token:  token,
		Name:   claims.Name,
		Role:   claims.Role,
		Course: claims.Course,
	})
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(tokenContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}
