package invoice

// Kind tells the caller what an action ended with.
type Kind int

const (
	// KindRedirect means the mutation succeeded and the caller should navigate to RedirectTo.
	KindRedirect Kind = iota
	// KindDone is a success that reports a status message instead of navigating (delete).
	KindDone
	// KindInvalid means validation failed and storage was not touched.
	KindInvalid
	// KindStorageError means the single statement failed.
	KindStorageError
)

func (k Kind) String() string {
	switch k {
	case KindRedirect:
		return "redirect"
	case KindDone:
		return "done"
	case KindInvalid:
		return "invalid"
	case KindStorageError:
		return "storage_error"
	}
	return "unknown"
}

// State is the structured object the form page re-renders with.
type State struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}

// Outcome is the result of one form action. Actions never return errors;
// Err only carries the storage cause for logging.
type Outcome struct {
	Kind       Kind
	RedirectTo string
	State      *State
	Err        error
}

func (o Outcome) Succeeded() bool {
	return o.Kind == KindRedirect || o.Kind == KindDone
}

func redirectTo(path string) Outcome {
	return Outcome{Kind: KindRedirect, RedirectTo: path}
}

func done(message string) Outcome {
	return Outcome{Kind: KindDone, State: &State{Message: message}}
}

func invalid(errs map[string][]string, message string) Outcome {
	return Outcome{Kind: KindInvalid, State: &State{Errors: errs, Message: message}}
}

func storageError(message string, err error) Outcome {
	return Outcome{Kind: KindStorageError, State: &State{Message: message}, Err: err}
}
