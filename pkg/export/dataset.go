package export

import (
	"fmt"
	"strconv"
)

// Dataset defines tabular export content. Row values are strings, int64 or nil.
type Dataset struct {
	Headers []string
	Rows    []map[string]interface{}
}

// Text renders a cell the way text formats (csv, pdf) print it.
func (d Dataset) Text(row map[string]interface{}, header string) string {
	return cellText(row[header])
}

func cellText(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case *int64:
		if v == nil {
			return ""
		}
		return strconv.FormatInt(*v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
