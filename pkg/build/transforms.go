package build

import (
	"fmt"
	"time"
)

// AppendActionResult records result and stops the pipeline from continuing when the action failed. Entries already
// recorded are kept as they are, including ones that aren't an ActionResult.
func AppendActionResult(result ActionResult) Transform {
	return func(current Build) (Build, error) {
		switch results := current[KeyActionResults].(type) {
		case []interface{}:
			current[KeyActionResults] = append(results, result)
		case []ActionResult:
			current[KeyActionResults] = append(results, result)
		case nil:
			current[KeyActionResults] = []interface{}{result}
		default:
			return nil, &PreconditionError{Operation: "append action result", Reason: fmt.Sprintf("action_results is a %T, not a list", results)}
		}
		if !result.Success {
			current[KeyContinue] = false
		}
		return current, nil
	}
}

// Stop sets stop_time, which makes the build finished
func Stop(at time.Time) Transform {
	return func(current Build) (Build, error) {
		current[KeyStopTime] = at
		return current, nil
	}
}

// AssignNode records the execution target of the build
func AssignNode(node map[string]interface{}) Transform {
	return func(current Build) (Build, error) {
		current[KeyNode] = node
		return current, nil
	}
}

// AssignGroup derives and sets the group name from project name and revision
func AssignGroup() Transform {
	return func(current Build) (Build, error) {
		group, err := GroupName(current)
		if err != nil {
			return nil, err
		}
		current[KeyGroup] = group
		return current, nil
	}
}
