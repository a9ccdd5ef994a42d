package identity

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
)

// LocalsUserKey is where the bearer middleware stores the authenticated record.
const LocalsUserKey = "identity_user"

// LoginPayload is the login form/JSON body
type LoginPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (p LoginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required),
		validation.Field(&p.Password, validation.Required),
	)
}

// RefreshPayload carries the token to refresh
type RefreshPayload struct {
	Token string `form:"token" json:"token"`
}

func (p RefreshPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Token, validation.Required),
	)
}

// Controller exposes the cores over HTTP. It is a thin wrapper: every
// response is the Envelope serialized verbatim under its own status code.
type Controller struct {
	Debug    bool
	Logger   Logger
	Accounts *Accounts
	Admin    *Admin

	store  UserStore
	tokens TokenService
}

// NewController wires the transport layer. The store and token service are
// only used by the bearer middleware to resolve and validate callers.
func NewController(accounts *Accounts, admin *Admin, store UserStore, tokens TokenService) *Controller {
	return &Controller{
		Logger:   defLogger{},
		Accounts: accounts,
		Admin:    admin,
		store:    store,
		tokens:   tokens,
	}
}

// RegisterRoutes mounts the REST surface on the given app.
func RegisterRoutes(app *fiber.App, c *Controller) {
	app.Post("/auth/register", c.RegisterPost)
	app.Post("/auth/login", c.LoginPost)
	app.Post("/auth/refresh", c.RefreshPost)

	admin := app.Group("/admin", c.RequireToken)
	admin.Get("/get-all-users", c.UsersList)
	admin.Get("/get-users/:id", c.UserGet)
	admin.Put("/update/:id", c.UserUpdate)
	admin.Delete("/delete/:id", c.UserDelete)

	app.Get("/adminuser/get-profile", c.RequireToken, c.ProfileGet)
}

// RequireToken gates a route on a bearer token: it extracts the claimed
// subject, loads the record, and validates the token against it.
func (c *Controller) RequireToken(ctx *fiber.Ctx) error {
	header := ctx.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return c.unauthorized(ctx, "Missing authentication token")
	}

	subject, err := c.tokens.ExtractSubject(token)
	if err != nil {
		c.Logger.Warn("bearer token rejected", "error", err)
		return c.unauthorized(ctx, "Invalid authentication token")
	}

	user, err := c.store.FindByEmail(ctx.UserContext(), subject)
	if err != nil {
		c.Logger.Warn("bearer subject not resolvable", "subject", subject)
		return c.unauthorized(ctx, "Invalid authentication token")
	}

	if !c.tokens.IsValid(token, user) {
		return c.unauthorized(ctx, "Invalid authentication token")
	}

	ctx.Locals(LocalsUserKey, user)
	return ctx.Next()
}

func (c *Controller) RegisterPost(ctx *fiber.Ctx) error {
	payload := new(RegisterRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return c.respond(ctx, badRequest("Error occurred: "+err.Error()))
	}

	env := c.Accounts.Register(ctx.UserContext(), *payload)
	return c.respond(ctx, env)
}

func (c *Controller) LoginPost(ctx *fiber.Ctx) error {
	payload := new(LoginPayload)
	if err := ctx.BodyParser(payload); err != nil {
		return c.respond(ctx, badRequest("Error occurred: "+err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return c.respond(ctx, badRequest(err.Error()))
	}

	env := c.Accounts.Login(ctx.UserContext(), payload.Email, payload.Password)
	return c.respond(ctx, env)
}

func (c *Controller) RefreshPost(ctx *fiber.Ctx) error {
	payload := new(RefreshPayload)
	if err := ctx.BodyParser(payload); err != nil {
		return c.respond(ctx, badRequest("Error occurred: "+err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return c.respond(ctx, badRequest(err.Error()))
	}

	env := c.Accounts.RefreshToken(ctx.UserContext(), payload.Token)
	return c.respond(ctx, env)
}

func (c *Controller) UsersList(ctx *fiber.Ctx) error {
	return c.respond(ctx, c.Admin.ListAll(ctx.UserContext()))
}

func (c *Controller) UserGet(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.respond(ctx, badRequest("Error occurred: "+err.Error()))
	}
	return c.respond(ctx, c.Admin.GetByID(ctx.UserContext(), id))
}

func (c *Controller) UserUpdate(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.respond(ctx, badRequest("Error occurred: "+err.Error()))
	}

	payload := new(UpdateUserRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return c.respond(ctx, badRequest("Error occurred: "+err.Error()))
	}

	return c.respond(ctx, c.Admin.UpdateByID(ctx.UserContext(), id, *payload))
}

func (c *Controller) UserDelete(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.respond(ctx, badRequest("Error occurred: "+err.Error()))
	}
	return c.respond(ctx, c.Admin.DeleteByID(ctx.UserContext(), id))
}

func (c *Controller) ProfileGet(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(LocalsUserKey).(*User)
	if !ok || user == nil {
		return c.unauthorized(ctx, "Invalid authentication token")
	}
	return c.respond(ctx, c.Admin.GetMyInfo(ctx.UserContext(), user.Email))
}

func (c *Controller) respond(ctx *fiber.Ctx, env *Envelope) error {
	if c.Debug {
		fmt.Println(print.MaybePrettyJSON(env))
	}
	return ctx.Status(env.StatusCode).JSON(env)
}

func (c *Controller) unauthorized(ctx *fiber.Ctx, message string) error {
	return ctx.Status(http.StatusUnauthorized).JSON(&Envelope{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
	})
}

func parseID(ctx *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(ctx.Params("id"), 10, 64)
}
