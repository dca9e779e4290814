package handler // handler defines http handlers

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"
)

// getUserID extracts the user_id placed in the context by the JWT middleware
// and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(c.Param(name), 10, 64)
}

// internalErr answers 500 with the underlying error text. The raw message is
// acceptable for an intranet tool; a public deployment would want to hide it.
func internalErr(c echo.Context, msg string, err error) error {
    return c.JSON(http.StatusInternalServerError, echo.Map{"message": msg, "error": err.Error()})
}
