package cli

import (
	"errors"

	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/filex"
	"github.com/fatih/color"
)

// Color scheme for the CLI
var (
	Title   = color.New(color.FgCyan, color.Bold)
	Author  = color.New(color.FgMagenta)
	Prompt  = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Success = color.New(color.FgGreen)
	Info    = color.New(color.FgBlue)
	Warning = color.New(color.FgYellow)
)

// errorMessage renders err as a short message for the user.
func errorMessage(err error) string {
	var re *common.RemoteError
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		return "Session expired, please log in again"
	case errors.Is(err, common.ErrNoDataAvailable):
		return "No internet connection and no cached stories available"
	case errors.Is(err, common.ErrNotFound):
		return "Story not found"
	case errors.Is(err, common.ErrInvalidDraft):
		return "A story needs a description and a photo"
	case errors.Is(err, filex.ErrPhotoTooLarge):
		return "Photo must be 1MB or smaller"
	case errors.Is(err, filex.ErrNotAnImage):
		return "That file is not an image"
	case errors.Is(err, common.ErrNetworkUnavailable):
		return "Server unreachable, please try again later"
	case errors.As(err, &re) && re.Message != "":
		return re.Message
	case errors.Is(err, common.ErrRemoteFailure):
		return "Server error, please try again later"
	case errors.Is(err, common.ErrStorage):
		return "Local storage is unavailable"
	default:
		return err.Error()
	}
}
