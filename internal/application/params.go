package application

import (
	"fmt"

	"insight-mcp-server/internal/domain"
)

// getStringParam extracts a string parameter from the arguments map.
// Returns an error if the parameter is required but missing or not a string.
func getStringParam(args map[string]interface{}, name string, required bool) (string, error) {
	value, exists := args[name]
	if !exists {
		if required {
			return "", &domain.Error{
				Code:    domain.InvalidParams,
				Message: fmt.Sprintf("missing required parameter: %s", name),
			}
		}
		return "", nil
	}

	strValue, ok := value.(string)
	if !ok {
		return "", &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("parameter %s must be a string", name),
		}
	}

	return strValue, nil
}

// getIntParam extracts an integer parameter from the arguments map.
// JSON numbers arrive as float64, so both numeric kinds are accepted.
func getIntParam(args map[string]interface{}, name string, required bool) (int, error) {
	value, exists := args[name]
	if !exists {
		if required {
			return 0, &domain.Error{
				Code:    domain.InvalidParams,
				Message: fmt.Sprintf("missing required parameter: %s", name),
			}
		}
		return 0, nil
	}

	switch v := value.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("parameter %s must be an integer", name),
		}
	}
}

// getStringSliceParam extracts a list-of-strings parameter from the
// arguments map. JSON arrays arrive as []interface{}.
func getStringSliceParam(args map[string]interface{}, name string, required bool) ([]string, error) {
	value, exists := args[name]
	if !exists {
		if required {
			return nil, &domain.Error{
				Code:    domain.InvalidParams,
				Message: fmt.Sprintf("missing required parameter: %s", name),
			}
		}
		return nil, nil
	}

	switch v := value.(type) {
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &domain.Error{
					Code:    domain.InvalidParams,
					Message: fmt.Sprintf("parameter %s must be a list of strings", name),
				}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("parameter %s must be a list of strings", name),
		}
	}
}
