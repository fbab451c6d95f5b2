package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/carpark/internal/client/dashboard"
	"github.com/dmitrijs2005/carpark/internal/client/invoice"
	"github.com/dmitrijs2005/carpark/internal/client/view"
	"github.com/dmitrijs2005/carpark/internal/filex"
)

// invoiceDir is where invoices are saved with -o.
const invoiceDir = "invoices"

var errUsage = errors.New("usage")

func (a *App) commands() commandTable {
	return commandTable{
		"login":    {"[username]   log in", a.login},
		"logout":   {"             log out", a.logout},
		"refresh":  {"             reload the state from the server", a.refresh},
		"show":     {"             print the dashboard", a.show},
		"park":     {"PLATE        park a car", a.park},
		"remove":   {"SPOT [HOURS [AMOUNT]]  remove a car", a.remove},
		"note":     {"SPOT         edit the comments of a parked car", a.note},
		"search":   {"TEXT         find parked cars by plate", a.search},
		"act":      {"ACTION TARGET  run a row action", a.act},
		"rate":     {"VALUE        set the hourly rate (admin)", a.rate},
		"setup":    {"CAPACITY     reset the car park (admin)", a.setup},
		"save":     {"             save a checkpoint on the server (admin)", a.save},
		"load":     {"             restore the saved checkpoint (admin)", a.load},
		"users":    {"             list accounts (admin)", a.users},
		"adduser":  {"USERNAME [ROLE]  create an account (admin)", a.addUser},
		"resetpw":  {"USERNAME     reset a password (admin)", a.resetPassword},
		"deluser":  {"USERNAME     delete an account (admin)", a.deleteUser},
		"passwd":   {"             change your password", a.passwd},
		"invoice":  {"N [-o]       invoice for transaction N (1 = newest)", a.invoice},
		"daily":    {"[YYYY-MM-DD] [-o]  daily invoice", a.daily},
		"export":   {"PATH         write the last state as JSON", a.export},
		"settings": {"             list local settings", a.listSettings},
		"forget":   {"[KEY...]     delete local settings (all when no key is given)", a.forget},
		"exit":     {"             leave", a.exit},
		"quit":     {"             leave", a.exit},
	}
}

func (a *App) usage(name string) error {
	cmd := a.commands()[name]
	fmt.Fprintf(a.out, "Usage: %s %s\n", name, strings.TrimSpace(strings.SplitN(cmd.usage, "  ", 2)[0]))
	return errUsage
}

func (a *App) exit(context.Context, []string) error {
	return errExit
}

func (a *App) show(context.Context, []string) error {
	a.printPage()
	return nil
}

// after prints the page when a handler succeeded.
func (a *App) after(err error) error {
	if err == nil {
		a.printPage()
	}
	return err
}

func (a *App) login(ctx context.Context, args []string) error {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		last := a.ctrl.LastUsername(ctx)
		prompt := "Username: "
		if last != "" {
			prompt = fmt.Sprintf("Username [%s]: ", last)
		}
		line, err := a.in.ReadLine(prompt)
		if err != nil {
			return err
		}
		username = strings.TrimSpace(line)
		if username == "" {
			username = last
		}
	}

	password, err := a.in.ReadPassword("Password: ")
	if err != nil {
		return err
	}
	return a.after(a.ctrl.Login(ctx, username, password))
}

func (a *App) logout(ctx context.Context, _ []string) error {
	err := a.ctrl.Logout(ctx)
	a.printPage()
	return err
}

func (a *App) refresh(ctx context.Context, _ []string) error {
	err := a.ctrl.Refresh(ctx)
	a.printPage()
	return err
}

func (a *App) park(ctx context.Context, args []string) error {
	return a.after(a.ctrl.Park(ctx, strings.Join(args, " ")))
}

// remove opens the remove form for a spot, fills the overrides from the
// arguments and submits it.
func (a *App) remove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage("remove")
	}
	if err := a.ctrl.Dispatch(ctx, dashboard.Action{Name: dashboard.ActionRemove, Target: args[0]}); err != nil {
		return err
	}
	if len(args) > 1 {
		a.ctrl.InputRemoveHours(args[1])
	}
	if len(args) > 2 {
		a.ctrl.InputRemoveAmount(args[2])
	}
	if amount := a.ctrl.Page().Remove.Amount; amount != "" {
		source := "calculated"
		if a.ctrl.AmountTouched() {
			source = "override"
		}
		fmt.Fprintf(a.out, "Amount: $%s (%s)\n", amount, source)
	}
	err := a.ctrl.SubmitRemove(ctx)
	if err != nil {
		a.ctrl.CloseRemoveModal()
	}
	return a.after(err)
}

func (a *App) note(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("note")
	}
	if err := a.ctrl.Dispatch(ctx, dashboard.Action{Name: dashboard.ActionComment, Target: args[0]}); err != nil {
		return err
	}
	return a.commentForm(ctx)
}

func (a *App) commentForm(ctx context.Context) error {
	defer a.ctrl.CloseCommentModal()

	form := a.ctrl.Page().Comment
	fmt.Fprintln(a.out, form.Label)
	if form.Text != "" {
		fmt.Fprintf(a.out, "Current comments:\n%s\n", form.Text)
	}

	text, err := GetMultiline(a.in, "Enter new comments", a.out)
	if err != nil {
		return err
	}
	a.ctrl.InputComment(text)
	return a.after(a.ctrl.SubmitComment(ctx))
}

func (a *App) search(ctx context.Context, args []string) error {
	if err := a.ctrl.Search(ctx, strings.Join(args, " ")); err != nil {
		return err
	}
	p := a.ctrl.Page()
	return view.WriteSearch(a.out, &p)
}

// act runs a row action the way a click on its button would and completes
// the form it opens.
func (a *App) act(ctx context.Context, args []string) error {
	if len(args) != 2 {
		err := a.usage("act")
		fmt.Fprintf(a.out, "Actions: %s\n", strings.Join(a.ctrl.Actions(), ", "))
		return err
	}
	name, target := args[0], args[1]

	switch name {
	case dashboard.ActionRemove:
		return a.remove(ctx, []string{target})
	case dashboard.ActionComment:
		return a.note(ctx, []string{target})
	case dashboard.ActionResetPassword:
		return a.resetPassword(ctx, []string{target})
	case dashboard.ActionDeleteUser:
		return a.deleteUser(ctx, []string{target})
	default:
		return a.ctrl.Dispatch(ctx, dashboard.Action{Name: name, Target: target})
	}
}

func (a *App) rate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("rate")
	}
	return a.after(a.ctrl.UpdateRate(ctx, args[0]))
}

func (a *App) setup(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("setup")
	}
	return a.after(a.ctrl.ResetCapacity(ctx, args[0]))
}

func (a *App) save(ctx context.Context, _ []string) error {
	return a.ctrl.Save(ctx)
}

func (a *App) load(ctx context.Context, _ []string) error {
	return a.after(a.ctrl.Load(ctx))
}

func (a *App) printUsers() {
	p := a.ctrl.Page()
	if err := view.WriteUsers(a.out, &p); err != nil {
		a.log.Warn(context.Background(), "print users", "error", err)
	}
}

func (a *App) users(ctx context.Context, _ []string) error {
	defer a.ctrl.CloseUsersModal()
	err := a.ctrl.OpenUsersModal(ctx)
	a.printUsers()
	return err
}

func (a *App) readNewPassword() (string, string, error) {
	pw, err := a.in.ReadPassword("New password: ")
	if err != nil {
		return "", "", err
	}
	confirm, err := a.in.ReadPassword("Confirm password: ")
	if err != nil {
		return "", "", err
	}
	return pw, confirm, nil
}

func (a *App) addUser(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return a.usage("adduser")
	}
	form := dashboard.NewUserForm{Username: args[0]}
	if len(args) == 2 {
		form.Role = args[1]
	}

	a.ctrl.OpenAddUserModal()
	defer a.ctrl.CloseAddUserModal()

	pw, confirm, err := a.readNewPassword()
	if err != nil {
		return err
	}
	form.Password, form.Confirm = pw, confirm

	if err := a.ctrl.CreateUser(ctx, form); err != nil {
		return err
	}
	a.printUsers()
	return nil
}

func (a *App) resetPassword(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("resetpw")
	}
	if err := a.ctrl.Dispatch(ctx, dashboard.Action{Name: dashboard.ActionResetPassword, Target: args[0]}); err != nil {
		return err
	}
	defer a.ctrl.CloseResetPasswordModal()

	pw, confirm, err := a.readNewPassword()
	if err != nil {
		return err
	}
	return a.ctrl.SubmitResetPassword(ctx, pw, confirm)
}

func (a *App) deleteUser(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("deluser")
	}
	if err := a.ctrl.Dispatch(ctx, dashboard.Action{Name: dashboard.ActionDeleteUser, Target: args[0]}); err != nil {
		return err
	}
	if a.ctrl.Page().Users.HTML != "" {
		a.printUsers()
	}
	return nil
}

func (a *App) passwd(ctx context.Context, _ []string) error {
	current, err := a.in.ReadPassword("Current password: ")
	if err != nil {
		return err
	}
	pw, confirm, err := a.readNewPassword()
	if err != nil {
		return err
	}
	return a.ctrl.ChangeOwnPassword(ctx, dashboard.PasswordChangeForm{Current: current, New: pw, Confirm: confirm})
}

// splitOutputFlag removes a trailing -o from args.
func splitOutputFlag(args []string) ([]string, bool) {
	rest := make([]string, 0, len(args))
	save := false
	for _, arg := range args {
		if arg == "-o" {
			save = true
			continue
		}
		rest = append(rest, arg)
	}
	return rest, save
}

func (a *App) emit(text, fileName string, save bool) error {
	fmt.Fprint(a.out, text)
	if !save {
		return nil
	}
	path, err := filex.WriteInSubDir(invoiceDir, fileName, []byte(text))
	if err != nil {
		a.ctrl.Banner().Error("Failed to save invoice")
		return err
	}
	a.ctrl.Banner().Info("Invoice saved to " + path)
	return nil
}

func (a *App) invoice(_ context.Context, args []string) error {
	args, save := splitOutputFlag(args)
	if len(args) != 1 {
		return a.usage("invoice")
	}

	s := a.ctrl.State()
	if s == nil {
		a.ctrl.Banner().Error("State not loaded yet")
		return errUsage
	}
	txs := s.TransactionsNewestFirst()

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(txs) {
		a.ctrl.Banner().Error(fmt.Sprintf("Choose a transaction between 1 and %d", len(txs)))
		return errUsage
	}

	now := a.now()
	text := invoice.Single(txs[n-1], now)
	return a.emit(text, fmt.Sprintf("invoice_%s.txt", now.Format("20060102_150405")), save)
}

func (a *App) daily(_ context.Context, args []string) error {
	args, save := splitOutputFlag(args)
	if len(args) > 1 {
		return a.usage("daily")
	}

	s := a.ctrl.State()
	if s == nil || len(s.Transactions) == 0 {
		a.ctrl.Banner().Error("No transactions available")
		return errUsage
	}

	loc := a.cfg.Location()
	day := a.now().In(loc)
	if len(args) == 1 {
		d, err := time.ParseInLocation("2006-01-02", args[0], loc)
		if err != nil {
			a.ctrl.Banner().Error("Date must be YYYY-MM-DD")
			return errUsage
		}
		day = d
	}

	text := invoice.Daily(s.Transactions, day, loc, a.now())
	return a.emit(text, invoice.FileName(day), save)
}

func (a *App) export(_ context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("export")
	}
	s := a.ctrl.State()
	if s == nil {
		a.ctrl.Banner().Error("State not loaded yet")
		return errUsage
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], append(data, '\n'), 0o640); err != nil {
		a.ctrl.Banner().Error("Failed to export state")
		return err
	}
	a.ctrl.Banner().Info("State exported to " + args[0])
	return nil
}

func (a *App) listSettings(ctx context.Context, _ []string) error {
	if a.settings == nil {
		a.ctrl.Banner().Error("Local settings are not available")
		return errUsage
	}
	values, err := a.settings.Settings(ctx)
	if err != nil {
		a.ctrl.Banner().Error("Failed to read local settings")
		return err
	}
	if len(values) == 0 {
		fmt.Fprintln(a.out, "No local settings.")
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "%-16s %s\n", k, values[k])
	}
	return nil
}

func (a *App) forget(ctx context.Context, args []string) error {
	if a.settings == nil {
		a.ctrl.Banner().Error("Local settings are not available")
		return errUsage
	}
	if err := a.settings.Forget(ctx, args...); err != nil {
		a.ctrl.Banner().Error("Failed to delete local settings")
		return err
	}
	if len(args) == 0 {
		a.ctrl.Banner().Info("Local settings cleared")
	} else {
		a.ctrl.Banner().Info("Deleted " + strings.Join(args, ", "))
	}
	return nil
}
