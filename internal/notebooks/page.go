package notebooks

import (
	"fmt"
	"regexp"
	"strconv"

	kerrors "github.com/PolarWolf314/agentg/internal/errors"
)

const (
	// PlainSuffix ends the name of a raw transcription page.
	PlainSuffix = ".txt"

	// EncryptedSuffix ends the name of a stored page.
	EncryptedSuffix = ".txt.enc"
)

// Identifiers are Unicode word characters: letters, digits, combining marks
// and underscore.
var (
	pageNameRegex   = regexp.MustCompile(`^([\p{L}\p{N}\p{M}_]+)___Page([0-9]+)\.txt(\.enc)?$`)
	identifierRegex = regexp.MustCompile(`^[\p{L}\p{N}\p{M}_]+$`)
)

// Page is one decrypted notebook page. Identity is Filename.
type Page struct {
	NotebookID string
	PageNumber int
	Filename   string
	Content    string
}

// ParsePageName extracts the notebook identifier and page number from
// <identifier>___Page<digits>.txt, optionally followed by .enc. Page
// numbers of any width are accepted.
func ParsePageName(filename string) (string, int, error) {
	m := pageNameRegex.FindStringSubmatch(filename)
	if m == nil {
		return "", 0, fmt.Errorf("%w: %s", kerrors.ErrInvalidPageName, filename)
	}

	page, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %s: page number out of range", kerrors.ErrInvalidPageName, filename)
	}
	return m[1], page, nil
}

// PageFileName returns the stored filename for a page, zero-padding the
// page number to three digits.
func PageFileName(notebookID string, page int) (string, error) {
	if !identifierRegex.MatchString(notebookID) {
		return "", fmt.Errorf("%w: identifier %q must contain only word characters", kerrors.ErrInvalidPageName, notebookID)
	}
	if page < 0 {
		return "", fmt.Errorf("%w: negative page number %d", kerrors.ErrInvalidPageName, page)
	}
	return fmt.Sprintf("%s___Page%03d%s", notebookID, page, EncryptedSuffix), nil
}
