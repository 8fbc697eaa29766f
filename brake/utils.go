package brake

import "fmt"

// HexDump formats buf as space separated hex bytes, "01 30 32".
func HexDump(buf []byte) string {
	return fmt.Sprintf("% x", buf)
}
