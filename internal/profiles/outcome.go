package profiles

// Outcome tags how Load resolved a profile.
type Outcome int

const (
	// Created means no artifact existed; a default profile was synthesized.
	Created Outcome = iota + 1

	// Fallback means an artifact existed but could not be read, decrypted or
	// parsed. The default profile was substituted and Cause says why.
	Fallback

	// LoadedLegacy means the plaintext .json artifact was read. The next Save
	// converts it to encrypted form.
	LoadedLegacy

	// Loaded means the encrypted artifact was read successfully.
	Loaded
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Fallback:
		return "fallback"
	case LoadedLegacy:
		return "loaded-legacy"
	case Loaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// LoadResult is the outcome of Store.Load.
type LoadResult struct {
	Profile *Profile
	Outcome Outcome

	// Cause is set only for Fallback.
	Cause error
}
