package cli

import (
	"context"
	"fmt"

	"github.com/nero7007/Professional-To-Do-List/internal/common"
	"github.com/nero7007/Professional-To-Do-List/internal/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// argOrPrompt returns args[0] when present, otherwise asks for it.
func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

// Register prompts for the account details and creates an unverified
// account. The verification code is shown in place of sending an e-mail.
func (a *App) Register(ctx context.Context) error {
	var in services.RegisterInput
	var err error

	if in.FirstName, err = getSimpleText(a.reader, "First name", a.out); err != nil {
		return err
	}
	if in.LastName, err = getSimpleText(a.reader, "Last name", a.out); err != nil {
		return err
	}
	if in.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if in.Phone, err = getSimpleText(a.reader, "Phone (with country code, e.g. +201001234567)", a.out); err != nil {
		return err
	}
	if in.Password, err = getPassword(a.reader, "Password", a.out); err != nil {
		return err
	}
	defer common.WipeByteArray(in.Password)

	reg, err := a.authService.Register(ctx, in)
	if err != nil {
		return err
	}

	a.success(fmt.Sprintf("Account created for %s. Your verification code is %s", reg.User.Email, reg.Code))
	a.info("Run 'verify' with the code to activate the account")
	return nil
}

func (a *App) Verify(ctx context.Context, args []string) error {
	email, err := a.argOrPrompt(args, "Email")
	if err != nil {
		return err
	}
	code, err := a.argOrPrompt(args[min(1, len(args)):], "Verification code")
	if err != nil {
		return err
	}
	if err := a.authService.VerifyAccount(ctx, email, code); err != nil {
		return err
	}
	a.success("Account verified, you can now log in")
	return nil
}

func (a *App) ResendCode(ctx context.Context, args []string) error {
	email, err := a.argOrPrompt(args, "Email")
	if err != nil {
		return err
	}
	code, err := a.authService.ResendVerificationCode(ctx, email)
	if err != nil {
		return err
	}
	a.success("New verification code: " + code)
	return nil
}

// Login prompts for credentials, starts a session and makes it current.
// The password is wiped before returning.
func (a *App) Login(ctx context.Context, args []string) error {
	email, err := a.argOrPrompt(args, "Email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.setProfile(p)
	a.browser = nil
	a.success("Welcome, " + p.FullName())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.setProfile(nil)
	a.browser = nil
	a.success("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	p, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	a.printf("%s\n%s\n%s\n", styles.Title.Render(p.FullName()), p.Email, p.Phone)
	return nil
}

func (a *App) ResetRequest(ctx context.Context, args []string) error {
	email, err := a.argOrPrompt(args, "Email")
	if err != nil {
		return err
	}
	code, err := a.authService.ResetPasswordRequest(ctx, email)
	if err != nil {
		return err
	}
	a.success(fmt.Sprintf("Reset code for %s: %s", email, code))
	a.info("Run 'reset-password' to choose a new password")
	return nil
}

func (a *App) ResetPassword(ctx context.Context) error {
	pw, err := getPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	confirmPw, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmPw)

	if err := a.authService.ResetPassword(ctx, pw, confirmPw); err != nil {
		return err
	}
	a.success("Password updated, you can now log in")
	return nil
}

func (a *App) DeleteAccount(ctx context.Context) error {
	p, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	ok, err := confirm(a.reader, fmt.Sprintf("Delete the account %s and all of its notes?", p.Email), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.info("Cancelled")
		return nil
	}
	if err := a.authService.DeleteAccount(ctx); err != nil {
		return err
	}
	a.setProfile(nil)
	a.browser = nil
	a.success("Account deleted")
	return nil
}
