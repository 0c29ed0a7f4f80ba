package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/userbook/internal/client/controller"
	"github.com/dmitrijs2005/userbook/internal/client/models"
)

const (
	noUsers     = "No users found"
	placeholder = "-"
)

// FormatDate renders t as local date and time, or "-" when absent.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return placeholder
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// RenderUsers lays the list out as an aligned table.
func RenderUsers(users []models.User) string {
	if len(users) == 0 {
		return noUsers
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tCREATED")
	for _, u := range users {
		phone := u.PhoneOrEmpty()
		if phone == "" {
			phone = placeholder
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, phone, FormatDate(u.CreatedAt))
	}
	_ = tw.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func RenderNotice(n *controller.Notice) string {
	return fmt.Sprintf("[%s] %s", n.Kind, n.Text)
}

// RenderFieldErrors lists field messages in form order.
func RenderFieldErrors(errs map[string]string) string {
	var lines []string
	for _, f := range []string{"name", "email", "phone"} {
		if msg, ok := errs[f]; ok {
			lines = append(lines, fmt.Sprintf("  %s: %s", f, msg))
		}
	}
	return strings.Join(lines, "\n")
}
