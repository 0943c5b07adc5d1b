package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/colorsync/colorsync/internal/role/domain"
	"github.com/colorsync/colorsync/internal/role/service"
	"github.com/colorsync/colorsync/internal/role/usecase"
)

// RunMigrateNames walks a workspace's role list, finds personal roles still
// carrying the legacy raw-identifier suffix, and rewrites them under the
// current hash suffix. With dryRun set, reports what would change without
// touching the directory.
func RunMigrateNames(
	ctx context.Context,
	dir usecase.Directory,
	engine usecase.ReconcileEngine,
	encoding service.NameEncoding,
	logger *slog.Logger,
	workspaceID int64,
	dryRun bool,
	io IOTuple,
) error {
	if workspaceID <= 0 {
		return fmt.Errorf("workspace must be a positive identifier")
	}

	roles, err := dir.ListRoles(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to list workspace roles: %w", err)
	}

	var migrated, skipped, failed int

	for _, role := range roles {
		userID, ok := encoding.DecodeLegacyUserID(role.Name)
		if !ok {
			continue
		}

		identity := domain.Identity{WorkspaceID: workspaceID, UserID: userID}

		if dryRun {
			fmt.Fprintf(io.Writer, "would migrate %q (user %d)\n", role.Name, userID)
			migrated++
			continue
		}

		updated, err := engine.MigrateLegacyName(ctx, identity)
		if err != nil {
			logger.Warn("migration failed",
				slog.String("role_name", role.Name),
				slog.Int64("user_id", userID),
				slog.Any("error", err),
			)
			fmt.Fprintf(io.Writer, "failed %q (user %d): %v\n", role.Name, userID, err)
			failed++
			continue
		}

		if updated.Name == role.Name {
			skipped++
			continue
		}

		fmt.Fprintf(io.Writer, "migrated %q -> %q\n", role.Name, updated.Name)
		migrated++
	}

	verb := "migrated"
	if dryRun {
		verb = "would migrate"
	}
	fmt.Fprintf(io.Writer, "%s %d, skipped %d, failed %d\n", verb, migrated, skipped, failed)

	if failed > 0 {
		return fmt.Errorf("%d role(s) failed to migrate", failed)
	}
	return nil
}
