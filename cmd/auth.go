package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dunerain/vidtube/internal/api"
	"github.com/dunerain/vidtube/internal/session"
)

// AuthLogin signs in and persists the session cookies.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	user, err := r.session.Login(ctx, cmd.String("user"), cmd.String("password"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Signed in as @%s (%s)\n", user.Username, user.FullName)
	return nil
}

// AuthRegister creates an account.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	avatar, avatarFile, err := openFilePart("avatar", cmd.String("avatar"))
	if err != nil {
		return err
	}
	defer avatarFile.Close()

	reg := session.Registration{
		FullName: cmd.String("fullname"),
		Email:    cmd.String("email"),
		Username: cmd.String("username"),
		Password: cmd.String("password"),
		Avatar:   avatar,
	}

	if coverPath := cmd.String("cover"); coverPath != "" {
		cover, coverFile, err := openFilePart("coverImage", coverPath)
		if err != nil {
			return err
		}
		defer coverFile.Close()
		reg.Cover = &cover
	}

	user, err := r.session.Register(ctx, reg)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	r.writePlain("✓ Account created: @%s\n", user.Username)
	r.writePlain("Sign in with 'vidtube auth login -u %s -p <password>'\n", user.Username)
	return nil
}

// AuthLogout signs out. Local credentials are dropped even when the server
// call fails.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.session.Logout(ctx); err != nil {
		return err
	}
	r.writePlain("✓ Signed out\n")
	return nil
}

// AuthWhoami runs the identity check and reports the session state.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(ctx); err != nil {
		return err
	}

	user, ok := r.session.Current()
	if !ok {
		r.writePlain("Not signed in\n")
		return nil
	}

	r.writePlain("@%s (%s)\n", user.Username, user.FullName)
	if user.Email != "" {
		r.writePlain("%s\n", user.Email)
	}
	return nil
}

// rejectionMessage pulls the server's message out of an API error for display.
func rejectionMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
