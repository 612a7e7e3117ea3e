// Package errors provides structured, actionable error messages for
// routerctl.
//
// Each error carries a code (e.g., "R100") registered with a category, a
// short message and a longer explanation. Call sites add a suggestion and
// wrap the underlying cause:
//
//	err := errors.New("R200").
//	    WithDetail("No snapshot at router-state.yaml").
//	    WithSuggestion("Pass --snapshot or set \"snapshot\" in routerctl.json").
//	    Wrap(cause)
//
//	fmt.Println(err.Format())
//	// ERROR R200: Snapshot file not found
//	//
//	//   No snapshot at router-state.yaml
//	//
//	//   Hint: Pass --snapshot or set "snapshot" in routerctl.json
//
// # Error Categories
//
//   - config: routerctl.json and environment problems
//   - snapshot: router state snapshot problems
//   - cli: invalid command arguments and failed operations
package errors
