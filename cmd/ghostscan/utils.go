package ghostscan

// pick helpers resolve flag > local config > global config precedence.
// The flag value wins when it differs from its default.

func pickString(flagVal string, local, global *string) string {
	if flagVal != "" {
		return flagVal
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return ""
}

func pickInt(flagVal int, local, global *int) int {
	if flagVal != 0 {
		return flagVal
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return 0
}

func pickInt64(flagVal int64, def int64, local, global *int64) int64 {
	if flagVal != def {
		return flagVal
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return flagVal
}

func pickBool(flagVal bool, local, global *bool) bool {
	if flagVal {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}
