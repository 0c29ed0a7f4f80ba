package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/userbook/internal/common"
	"github.com/dmitrijs2005/userbook/internal/logging"
	"github.com/dmitrijs2005/userbook/internal/server/models"
	"github.com/dmitrijs2005/userbook/internal/server/services"
	"github.com/dmitrijs2005/userbook/internal/validation"
	"github.com/gin-gonic/gin"
)

// Envelope is the body of every response. Error carries the machine-readable
// kind on failures; Message is meant for people.
type Envelope struct {
	Success bool        `json:"success"`
	Data    any         `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   common.Kind `json:"error,omitempty"`
}

// CreatedData is the payload of a successful create.
type CreatedData struct {
	ID int64 `json:"id"`
}

// UserService is what the handler needs from the business layer.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, in services.UserInput) (int64, error)
	Update(ctx context.Context, id int64, in services.UserInput) error
	Delete(ctx context.Context, id int64) error
}

const (
	MsgInvalidAction   = "Invalid action"
	MsgNotFound        = "User not found"
	MsgEmailExists     = "Email already exists"
	MsgEmailTakenOther = "Email already exists in another user"
	MsgCreated         = "User created successfully"
	MsgUpdated         = "User updated successfully"
	MsgDeleted         = "User deleted successfully"
)

// Commands. Each action is parsed into one of these before anything runs.
type (
	listCmd   struct{}
	getCmd    struct{ id int64 }
	createCmd struct{ in services.UserInput }
	updateCmd struct {
		id int64
		in services.UserInput
	}
	deleteCmd struct{ id int64 }
)

type command interface {
	action() string
}

func (listCmd) action() string   { return "list" }
func (getCmd) action() string    { return "get" }
func (createCmd) action() string { return "create" }
func (updateCmd) action() string { return "update" }
func (deleteCmd) action() string { return "delete" }

var storeMessages = map[string]string{
	"list":   "Failed to get users",
	"get":    "Failed to get user",
	"create": "Failed to create user",
	"update": "Failed to update user",
	"delete": "Failed to delete user",
}

// parseCommand reads the action from the query string. Get takes its id
// from the query, mutating actions read the POST form.
func parseCommand(c *gin.Context) (command, error) {
	switch c.Query("action") {
	case "list":
		return listCmd{}, nil
	case "get":
		id, err := validation.ParseID(c.Query("id"))
		if err != nil {
			return getCmd{}, err
		}
		return getCmd{id: id}, nil
	case "create":
		return createCmd{in: formInput(c)}, nil
	case "update":
		id, err := validation.ParseID(c.PostForm("id"))
		if err != nil {
			return updateCmd{}, err
		}
		return updateCmd{id: id, in: formInput(c)}, nil
	case "delete":
		id, err := validation.ParseID(c.PostForm("id"))
		if err != nil {
			return deleteCmd{}, err
		}
		return deleteCmd{id: id}, nil
	default:
		return nil, common.ErrInvalidAction
	}
}

func formInput(c *gin.Context) services.UserInput {
	return services.UserInput{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
		Phone: c.PostForm("phone"),
	}
}

type Handler struct {
	users  UserService
	logger logging.Logger
}

func NewHandler(us UserService, l logging.Logger) *Handler {
	return &Handler{users: us, logger: l.With("module", "http_handler")}
}

// Operations is the single action endpoint.
func (h *Handler) Operations(c *gin.Context) {
	cmd, err := parseCommand(c)
	if err != nil {
		h.fail(c, cmd, err)
		return
	}

	env, err := h.execute(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, cmd, err)
		return
	}
	c.JSON(http.StatusOK, env)
}

func (h *Handler) execute(ctx context.Context, cmd command) (Envelope, error) {
	switch cmd := cmd.(type) {
	case listCmd:
		list, err := h.users.List(ctx)
		if err != nil {
			return Envelope{}, err
		}
		if list == nil {
			list = []models.User{}
		}
		return Envelope{Success: true, Data: list}, nil

	case getCmd:
		u, err := h.users.Get(ctx, cmd.id)
		if err != nil {
			return Envelope{}, err
		}
		return Envelope{Success: true, Data: u}, nil

	case createCmd:
		id, err := h.users.Create(ctx, cmd.in)
		if err != nil {
			return Envelope{}, err
		}
		return Envelope{Success: true, Message: MsgCreated, Data: CreatedData{ID: id}}, nil

	case updateCmd:
		if err := h.users.Update(ctx, cmd.id, cmd.in); err != nil {
			return Envelope{}, err
		}
		return Envelope{Success: true, Message: MsgUpdated}, nil

	case deleteCmd:
		if err := h.users.Delete(ctx, cmd.id); err != nil {
			return Envelope{}, err
		}
		return Envelope{Success: true, Message: MsgDeleted}, nil
	}

	return Envelope{}, common.ErrInvalidAction
}

// fail writes the failure envelope for err. cmd may be nil when the action
// itself could not be recognised.
func (h *Handler) fail(c *gin.Context, cmd command, err error) {
	kind := common.KindOf(err)
	action := ""
	if cmd != nil {
		action = cmd.action()
	}

	var msg string
	switch kind {
	case common.KindValidation:
		msg = err.Error()
	case common.KindNotFound:
		msg = MsgNotFound
	case common.KindConflict:
		msg = MsgEmailExists
		if action == "update" {
			msg = MsgEmailTakenOther
		}
	case common.KindInvalidAction:
		msg = MsgInvalidAction
	default:
		msg = storeMessages[action]
		if msg == "" {
			msg = "Internal error"
		}
		h.logger.Error(c.Request.Context(), "store failure",
			"action", action, "error", err.Error(), "request_id", requestID(c))
	}

	c.JSON(statusFor(kind), Envelope{Success: false, Message: msg, Error: kind})
}

func statusFor(k common.Kind) int {
	switch k {
	case common.KindValidation, common.KindInvalidAction:
		return http.StatusBadRequest
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
