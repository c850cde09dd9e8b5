// Package prompt fills forms interactively in a terminal. Each field is
// asked through a PromptDriver (survey by default), the answers are
// validated with the form's own validators and fields that failed are asked
// again.
package prompt
