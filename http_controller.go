package auth

import (
	stderrors "errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// MessageResponse is the generic response envelope
type MessageResponse struct {
	Msg string `json:"msg"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	Msg   string `json:"msg"`
	Token string `json:"token"`
}

// UserResponse wraps a public user record; the password hash is never
// serialized.
type UserResponse struct {
	User *User `json:"user"`
}

type AuthControllerRoutes struct {
	Home     string
	Register string
	Login    string
	UserShow string
}

type AuthController struct {
	Logger Logger
	Repo   RepositoryManager
	Auther Authenticator
	Routes *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Home:     "/",
			Register: "/auth/register",
			Login:    "/auth/login",
			UserShow: "/user/:id",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the API. Only the user lookup route goes through
// the guard; registration and login stay public.
func RegisterAuthRoutes(app *fiber.App, guard fiber.Handler, opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)

	app.Get(controller.Routes.Home, controller.Home).
		Name("home.get")

	app.Post(controller.Routes.Register, controller.RegistrationCreate).
		Name("register.post")

	app.Post(controller.Routes.Login, controller.LoginPost).
		Name("sign-in.post")

	app.Get(controller.Routes.UserShow, guard, controller.UserShow).
		Name("user.get")

	return controller
}

func (a *AuthController) Home(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(MessageResponse{Msg: "API up and running"})
}

func (a *AuthController) RegistrationCreate(c *fiber.Ctx) error {
	payload := new(RegisterUserMessage)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register user parse payload", "error", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(MessageResponse{
			Msg: "could not parse request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(MessageResponse{
			Msg: FirstValidationError(err, RegistrationFieldOrder...),
		})
	}

	registerUser := NewRegisterUserHandler(a.Repo).WithLogger(a.Logger)
	if err := registerUser.Execute(c.UserContext(), *payload); err != nil {
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(MessageResponse{Msg: "user created"})
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetIdentifier returns the identifier
func (r LoginRequest) GetIdentifier() string {
	return r.Email
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("email is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(MessageResponse{
			Msg: "could not parse request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(MessageResponse{
			Msg: FirstValidationError(err, "email", "password"),
		})
	}

	token, err := a.Auther.Login(c.UserContext(), payload.GetIdentifier(), payload.GetPassword())
	if err != nil {
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		Msg:   "authentication succeeded",
		Token: token,
	})
}

// UserShow returns the public record for the path-supplied id. The guard
// verified the caller holds a valid token but the subject is not cross
// checked against the requested id: any valid token can read any record.
func (a *AuthController) UserShow(c *fiber.Ctx) error {
	id := c.Params("id")

	if _, err := uuid.Parse(id); err != nil {
		return a.renderError(c, ErrUserNotFound)
	}

	user, err := a.Repo.Users().GetByID(c.UserContext(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return a.renderError(c, ErrUserNotFound)
		}
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(UserResponse{User: user})
}

// renderError converts rich errors into the status/message contract: client
// faults answer 422 with their message, everything else collapses into a
// logged 500 with a generic body.
func (a *AuthController) renderError(c *fiber.Ctx, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred")
	}

	switch richErr.Category {
	case goerrors.CategoryValidation,
		goerrors.CategoryConflict,
		goerrors.CategoryAuth,
		goerrors.CategoryNotFound:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(MessageResponse{
			Msg: richErr.Message,
		})
	default:
		a.Logger.Error("request failed",
			"error", err,
			"category", richErr.Category,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Msg: "An unexpected server error occurred",
		})
	}
}

// FirstValidationError picks the message of the first failing field in
// declared order out of a collected ozzo validation error set.
func FirstValidationError(err error, fields ...string) string {
	var verrs validation.Errors
	if !stderrors.As(err, &verrs) {
		return err.Error()
	}

	for _, field := range fields {
		if ferr, ok := verrs[field]; ok && ferr != nil {
			return ferr.Error()
		}
	}

	return err.Error()
}
