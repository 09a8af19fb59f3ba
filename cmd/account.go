package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dunerain/vidtube/internal/formatter"
	"github.com/dunerain/vidtube/internal/models"
	"github.com/dunerain/vidtube/internal/query"
	"github.com/dunerain/vidtube/internal/shared"
)

// accountScope carries the signed-in user's identifiers so account mutations
// invalidate their own channel profile.
func (r *Runner) accountScope() query.Scope {
	var scope query.Scope
	if user, ok := r.session.Current(); ok {
		scope.UserID = user.ID
		scope.Username = user.Username
	}
	return scope
}

// AccountUpdate changes the signed-in user's full name and email.
func (r *Runner) AccountUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	fullName := cmd.String("fullname")
	email := cmd.String("email")
	if fullName == "" && email == "" {
		return fmt.Errorf("%w: nothing to update, pass --fullname or --email", shared.ErrMissingArgument)
	}

	result, err := r.dispatcher.Do(ctx, query.MutationUpdateAccount, r.accountScope(), func(ctx context.Context) (any, error) {
		return r.users.UpdateAccount(ctx, fullName, email)
	})
	if err != nil {
		return fmt.Errorf("account update failed: %s", rejectionMessage(err))
	}

	user := result.(*models.User)
	r.writePlain("✓ Account updated: %s <%s>\n", user.FullName, user.Email)
	return nil
}

// AccountAvatar replaces the signed-in user's avatar image.
func (r *Runner) AccountAvatar(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	part, f, err := openFilePart("avatar", cmd.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = r.dispatcher.Do(ctx, query.MutationUpdateAvatar, r.accountScope(), func(ctx context.Context) (any, error) {
		return r.users.UpdateAvatar(ctx, part)
	})
	if err != nil {
		return fmt.Errorf("avatar update failed: %s", rejectionMessage(err))
	}

	r.writePlain("✓ Avatar updated\n")
	return nil
}

// AccountCover replaces the signed-in user's channel cover image.
func (r *Runner) AccountCover(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	part, f, err := openFilePart("coverImage", cmd.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = r.dispatcher.Do(ctx, query.MutationUpdateCoverImage, r.accountScope(), func(ctx context.Context) (any, error) {
		return r.users.UpdateCoverImage(ctx, part)
	})
	if err != nil {
		return fmt.Errorf("cover image update failed: %s", rejectionMessage(err))
	}

	r.writePlain("✓ Cover image updated\n")
	return nil
}

// AccountHistory prints the signed-in user's watch history.
func (r *Runner) AccountHistory(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	videos, err := query.Fetch(ctx, r.cache, query.KeyWatchHistory, func(ctx context.Context) ([]models.Video, error) {
		return r.users.WatchHistory(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch watch history: %s", rejectionMessage(err))
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, true)
	}
	formatter.VideosTable(r.output, videos)
	return nil
}
