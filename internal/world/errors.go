package world

import "errors"

// Validation errors.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptyName       = errors.New("empty name")
)

// Lookup errors.
var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrClanNotFound   = errors.New("clan not found")
	ErrAreaNotFound   = errors.New("area not found")
	ErrGroupNotInClan = errors.New("group not in clan")
)

// Conflict errors.
var (
	ErrNameTaken           = errors.New("name already taken")
	ErrGroupAlreadyPresent = errors.New("group already present in area")
	ErrGroupAlreadyInArea  = errors.New("group already in destination area")
)

// Rule violations.
var (
	ErrCannotDivide     = errors.New("group cannot divide")
	ErrFightSelf        = errors.New("group cannot fight itself")
	ErrFightEmpty       = errors.New("cannot fight an empty group")
	ErrTradeSelf        = errors.New("group cannot trade with itself")
	ErrEmptyGroup       = errors.New("group is empty")
	ErrCannotUnite      = errors.New("clans cannot unite")
	ErrAreaNotReachable = errors.New("area not reachable")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidArgument, "invalid_argument"},
	{ErrEmptyName, "empty_name"},
	{ErrGroupNotFound, "group_not_found"},
	{ErrClanNotFound, "clan_not_found"},
	{ErrAreaNotFound, "area_not_found"},
	{ErrGroupNotInClan, "group_not_in_clan"},
	{ErrNameTaken, "name_taken"},
	{ErrGroupAlreadyPresent, "group_already_present"},
	{ErrGroupAlreadyInArea, "group_already_in_area"},
	{ErrCannotDivide, "cannot_divide"},
	{ErrFightSelf, "fight_self"},
	{ErrFightEmpty, "fight_empty"},
	{ErrTradeSelf, "trade_self"},
	{ErrEmptyGroup, "empty_group"},
	{ErrCannotUnite, "cannot_unite"},
	{ErrAreaNotReachable, "area_not_reachable"},
}

// ErrorCode returns the stable code of the sentinel wrapped by err,
// "" for nil and "unknown" for errors outside this package.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return "unknown"
}

// IsErrorCode reports whether code names one of this package's errors.
func IsErrorCode(code string) bool {
	for _, e := range errorCodes {
		if e.code == code {
			return true
		}
	}
	return false
}
