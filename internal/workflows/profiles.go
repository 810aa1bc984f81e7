package workflows

import (
	"context"

	"github.com/PolarWolf314/agentg/internal/audit"
	"github.com/PolarWolf314/agentg/internal/profiles"
)

// ListProfilesResult contains the profiles found on disk.
type ListProfilesResult struct {
	Dir string

	// Profiles are the logical names of encrypted profiles, sorted.
	Profiles []string

	// Legacy are the names of plaintext profiles awaiting migration.
	Legacy []string

	// Default is the profile a session opens when none is named.
	Default string
}

// ListProfiles lists encrypted and legacy profiles. A missing profile
// directory yields empty lists.
func ListProfiles(ctx context.Context, rt *Runtime) (*ListProfilesResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store, err := rt.profileStore()
	if err != nil {
		return nil, err
	}

	return &ListProfilesResult{
		Dir:      store.Dir(),
		Profiles: store.ListAvailable(),
		Legacy:   store.ListLegacy(),
		Default:  rt.Config.Session.DefaultProfile,
	}, nil
}

// ShowProfileOptions configures the show-profile workflow.
type ShowProfileOptions struct {
	// Name selects the profile. Empty means the default profile.
	Name string

	// Last limits the returned history to the most recent turns. 0 means all.
	Last int
}

// ShowProfileResult contains a decrypted profile.
type ShowProfileResult struct {
	Name    string
	Outcome profiles.Outcome

	// Cause explains a Fallback outcome.
	Cause error

	Profile *profiles.Profile

	// History is the possibly truncated view of Profile.History.
	History []profiles.Turn
}

// ShowProfile decrypts a profile for inspection. It never writes.
//
// Returns ErrInvalidProfileName for malformed names. Missing or unreadable
// profiles are reported through Outcome, not as errors.
func ShowProfile(ctx context.Context, rt *Runtime, opts ShowProfileOptions) (*ShowProfileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name = rt.Config.Session.DefaultProfile
	}
	name, err := profiles.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	store, err := rt.profileStore()
	if err != nil {
		return nil, err
	}

	loaded, err := store.Load(name)
	if err != nil {
		return nil, err
	}

	history := loaded.Profile.History
	if opts.Last > 0 && len(history) > opts.Last {
		history = history[len(history)-opts.Last:]
	}

	return &ShowProfileResult{
		Name:    name,
		Outcome: loaded.Outcome,
		Cause:   loaded.Cause,
		Profile: loaded.Profile,
		History: history,
	}, nil
}

// ResetProfileOptions configures the reset-profile workflow.
type ResetProfileOptions struct {
	Name string
}

// ResetProfileResult contains the outcome of clearing a profile's history.
type ResetProfileResult struct {
	Name string

	// ClearedTurns is the number of turns removed.
	ClearedTurns int
}

// ResetProfile clears the conversation history of an existing profile and
// saves it encrypted. Identity fields are kept.
//
// Returns ErrProfileNotFound if no artifact exists for the name.
func ResetProfile(ctx context.Context, rt *Runtime, opts ResetProfileOptions) (*ResetProfileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, err := profiles.NormalizeName(opts.Name)
	if err != nil {
		return nil, err
	}

	store, err := rt.profileStore()
	if err != nil {
		return nil, err
	}

	before, err := store.Load(name)
	if err != nil {
		return nil, err
	}
	cleared := len(before.Profile.History)

	if _, err := store.Reset(name); err != nil {
		return nil, err
	}

	rt.record(audit.Entry{Operation: audit.OpProfileReset, Profile: name, Turns: cleared})

	return &ResetProfileResult{Name: name, ClearedTurns: cleared}, nil
}

// MigrateProfilesResult contains the outcome of a legacy migration.
type MigrateProfilesResult struct {
	// Migrated lists profiles re-saved in encrypted form.
	Migrated []string

	// Remaining lists legacy profiles still on disk afterwards.
	Remaining []string
}

// MigrateProfiles encrypts every legacy plaintext profile that has no
// encrypted counterpart and removes the plaintext file.
func MigrateProfiles(ctx context.Context, rt *Runtime) (*MigrateProfilesResult, error) {
	store, err := rt.profileStore()
	if err != nil {
		return nil, err
	}

	migrated, err := store.Migrate(ctx)
	for _, name := range migrated {
		rt.record(audit.Entry{Operation: audit.OpProfileMigrated, Profile: name})
	}
	if err != nil {
		return nil, err
	}

	return &MigrateProfilesResult{
		Migrated:  migrated,
		Remaining: store.ListLegacy(),
	}, nil
}
