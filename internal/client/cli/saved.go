package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/haulbay/haulbay-cli/internal/client/api"
)

// consoleNotifier prints engine notifications to the CLI output.
type consoleNotifier struct {
	out io.Writer
}

func (n *consoleNotifier) Notify(_ context.Context, title, detail string) {
	fmt.Fprintf(n.out, "%s: %s\n", title, detail)
}

func (n *consoleNotifier) NotifyError(_ context.Context, title, detail string) {
	fmt.Fprintf(n.out, "%s: %s\n", title, detail)
}

// parseListingArgs turns "truck 42" into a ListingRef.
func parseListingArgs(args []string) (api.ListingRef, error) {
	if len(args) != 2 {
		return api.ListingRef{}, fmt.Errorf("usage: <truck|trailer> <id>")
	}

	var typ api.ListingType
	switch args[0] {
	case "truck":
		typ = api.ListingTruck
	case "trailer":
		typ = api.ListingTrailer
	default:
		return api.ListingRef{}, fmt.Errorf("unknown listing type %q, want truck or trailer", args[0])
	}

	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || id <= 0 {
		return api.ListingRef{}, fmt.Errorf("invalid listing id %q", args[1])
	}

	return api.ListingRef{Type: typ, ID: id}, nil
}

// Save marks a listing as saved. Already-saved listings are reported, not
// toggled off.
func (a *App) Save(ctx context.Context, args []string) error {
	ref, err := parseListingArgs(args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}

	m := a.saved.Mark(ctx, ref, ref.String())
	if m.Saved() {
		fmt.Fprintf(a.out, "%s is already saved.\n", ref)
		return nil
	}
	return m.Toggle(ctx)
}

// Unsave removes a listing from the saved collection.
func (a *App) Unsave(ctx context.Context, args []string) error {
	ref, err := parseListingArgs(args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}

	m := a.saved.Mark(ctx, ref, ref.String())
	if !m.Saved() {
		fmt.Fprintf(a.out, "%s is not saved.\n", ref)
		return nil
	}
	return m.Toggle(ctx)
}

// ListSaved prints the saved collection of whichever backend is
// authoritative: the server collection when signed in, the device-local
// flags otherwise.
func (a *App) ListSaved(ctx context.Context) error {
	listings, err := a.saved.List(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Failed to load saved listings.")
		return err
	}

	if len(listings) == 0 {
		fmt.Fprintln(a.out, "No saved listings.")
		return nil
	}

	scope := "saved on this device"
	if a.user.IsAuthenticated() {
		scope = "saved to your account"
	}
	fmt.Fprintf(a.out, "Listings %s:\n", scope)
	for _, l := range listings {
		ref := api.ListingRef{Type: l.ListingType, ID: l.ListingID()}
		if l.Title != "" {
			fmt.Fprintf(a.out, "  %s  %s\n", ref, l.Title)
		} else {
			fmt.Fprintf(a.out, "  %s\n", ref)
		}
	}
	return nil
}
