package operation

import (
	"fmt"

	"yard/internal/pkg/errs"
)

// Code identifies a checkpoint kind.
type Code int

const (
	// Unknown is the zero value and marks "no operation" in Next/Prev links.
	Unknown Code = iota
	Entry
	InitialWeighing
	LoadingEntry
	Loading
	FinalWeighing
	Exit
	Reloading
	TareReweighing
)

func getCodeStrings() map[Code]string {
	return map[Code]string{
		Unknown:         "unknown",
		Entry:           "entry",
		InitialWeighing: "initial_weighing",
		LoadingEntry:    "loading_entry",
		Loading:         "loading",
		FinalWeighing:   "final_weighing",
		Exit:            "exit",
		Reloading:       "reloading",
		TareReweighing:  "tare_reweighing",
	}
}

// ParseCode converts the wire name ("final_weighing") to a Code.
func ParseCode(s string) (Code, error) {
	for code, str := range getCodeStrings() {
		if code != Unknown && str == s {
			return code, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("operation", fmt.Errorf("%q is not a known operation", s))
}

func (c Code) Validate() error {
	if _, ok := getCodeStrings()[c]; !ok || c == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("operation", fmt.Errorf("%d is not a valid operation", c))
	}
	return nil
}

func (c Code) String() string {
	if str, ok := getCodeStrings()[c]; ok {
		return str
	}
	return "unknown"
}
