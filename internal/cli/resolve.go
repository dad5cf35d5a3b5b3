package cli

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// resolveOwnerID accepts an owner's display name (case-insensitive), a full
// UUID, or a UUID prefix.
func resolveOwnerID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("owner is required (use --owner)")
	}

	owners, err := app.Owners.List(ctx)
	if err != nil {
		return "", err
	}

	for _, o := range owners {
		if strings.EqualFold(o.DisplayName, input) {
			return o.ID, nil
		}
	}
	for _, o := range owners {
		if o.ID == input {
			return o.ID, nil
		}
	}

	var matches []string
	for _, o := range owners {
		if strings.HasPrefix(o.ID, input) {
			matches = append(matches, o.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("owner not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("owner %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTaskID accepts a full task UUID or a UUID prefix, scoped to an owner.
func resolveTaskID(ctx context.Context, app *App, ownerID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}

	tasks, err := app.Tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}

	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
	}

	var matches []string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveDate parses a YYYY-MM-DD argument; an empty input means today in the
// owner's timezone.
func resolveDate(ctx context.Context, app *App, ownerID, input string) (time.Time, error) {
	if input != "" {
		d, err := time.Parse("2006-01-02", input)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", input, err)
		}
		return d, nil
	}

	zone := time.UTC
	if owner, err := app.Owners.GetByID(ctx, ownerID); err == nil {
		if z, zerr := time.LoadLocation(owner.Timezone); zerr == nil {
			zone = z
		}
	}
	// Plan dates are calendar dates carried as UTC midnights.
	today := app.Clock.Today(zone)
	return time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC), nil
}

// taskDescriptions builds an ID-to-description map for display.
func taskDescriptions(ctx context.Context, app *App, ownerID string) map[string]string {
	out := map[string]string{}
	tasks, err := app.Tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return out
	}
	for _, t := range tasks {
		out[t.ID] = t.Description
	}
	return out
}
