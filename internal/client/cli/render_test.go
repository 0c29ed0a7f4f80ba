package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/userbook/internal/client/controller"
	"github.com/dmitrijs2005/userbook/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderUsers_Empty(t *testing.T) {
	assert.Equal(t, "No users found", RenderUsers(nil))
	assert.Equal(t, "No users found", RenderUsers([]models.User{}))
}

func TestRenderUsers_Placeholders(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	phone := "+1-555-0100"
	out := RenderUsers([]models.User{
		{ID: 2, Name: "Ann Lee", Email: "ann@example.com", Phone: &phone, CreatedAt: &created},
		{ID: 1, Name: "Bob", Email: "bob@example.com"},
	})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "+1-555-0100")
	assert.Contains(t, lines[1], created.Local().Format("2006-01-02 15:04:05"))

	fields := strings.Fields(lines[2])
	assert.Equal(t, []string{"1", "Bob", "bob@example.com", "-", "-"}, fields)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(nil))
	assert.Equal(t, "-", FormatDate(&time.Time{}))
}

func TestRenderNoticeAndFieldErrors(t *testing.T) {
	assert.Equal(t, "[error] Email already exists",
		RenderNotice(&controller.Notice{Text: "Email already exists", Kind: controller.NoticeError}))

	out := RenderFieldErrors(map[string]string{"email": "Email is required", "name": "Name is required"})
	assert.Equal(t, "  name: Name is required\n  email: Email is required", out)
}
