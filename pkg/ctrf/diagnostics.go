package ctrf

import "strings"

// FailureDetails is the normalized failure text of a test.
type FailureDetails struct {
	Message string
	Trace   string
	// Line is nil when the test's own source line could not be determined.
	Line *int
}

// ExtractFailureDetails returns the failure message, trace, and source line
// for tc. The result is empty unless tc's native state is "fail".
func ExtractFailureDetails(tc TestCase) FailureDetails {
	if tc.Result.State != NativeFail {
		return FailureDetails{}
	}

	messages := make([]string, 0, len(tc.Result.Errors))
	var stacks []string
	for _, e := range tc.Result.Errors {
		messages = append(messages, e.Message)
		if e.Stack != "" {
			stacks = append(stacks, e.Stack)
		}
	}

	details := FailureDetails{
		Message: strings.Join(messages, "\n"),
		Trace:   strings.Join(stacks, "\n\n"),
	}

	if details.Trace != "" && tc.FilePath != "" {
		if line, ok := ResolveLine(ParseStackTrace(details.Trace), tc.FilePath); ok {
			details.Line = &line
		}
	}

	return details
}
