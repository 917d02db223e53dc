package host

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/xsvfbang/pkg/engine"
)

// ReallocProfile records the largest size ever requested per engine
// memory class during a run. At shutdown it can emit a drop-in C
// allocator with static buffers sized to the observed maxima, for
// embedding the engine on platforms without a heap.
type ReallocProfile struct {
	max [engine.MemNum]int
}

// Record notes a reallocation request.
func (p *ReallocProfile) Record(class engine.MemClass, size int) {
	if class < 0 || class >= engine.MemNum {
		return
	}
	if size > p.max[class] {
		p.max[class] = size
	}
}

// Max returns the high-water mark for a class.
func (p *ReallocProfile) Max(class engine.MemClass) int {
	if class < 0 || class >= engine.MemNum {
		return 0
	}
	return p.max[class]
}

// Used reports whether any reallocation was recorded at all.
func (p *ReallocProfile) Used() bool {
	for _, m := range p.max {
		if m > 0 {
			return true
		}
	}
	return false
}

// EmitStaticAllocator generates the C source of a static-buffer allocator
// named funcName. A buffer is declared for every class with a nonzero
// observed maximum; the lookup covers class indices up to and including
// the highest used class and returns the class buffer when the requested
// size fits, null otherwise.
func (p *ReallocProfile) EmitStaticAllocator(funcName string) string {
	num := 0
	for i := engine.MemClass(0); i < engine.MemNum; i++ {
		if p.max[i] > 0 {
			num = int(i) + 1
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "void *%s(void *h, void *ptr, int size, int which) {\n", funcName)
	for i := 0; i < num; i++ {
		if p.max[i] > 0 {
			fmt.Fprintf(&sb, "\tstatic unsigned char buf_%s[%d];\n", engine.MemClass(i), p.max[i])
		}
	}
	fmt.Fprintf(&sb, "\tstatic unsigned char *buflist[%d] = {", num)
	for i := 0; i < num; i++ {
		sb.WriteString(sep(i))
		if p.max[i] > 0 {
			fmt.Fprintf(&sb, "buf_%s", engine.MemClass(i))
		} else {
			sb.WriteString("(void*)0")
		}
	}
	fmt.Fprintf(&sb, " };\n\tstatic int sizelist[%d] = {", num)
	for i := 0; i < num; i++ {
		sb.WriteString(sep(i))
		if p.max[i] > 0 {
			fmt.Fprintf(&sb, "sizeof(buf_%s)", engine.MemClass(i))
		} else {
			sb.WriteString("0")
		}
	}
	fmt.Fprintf(&sb, " };\n")
	fmt.Fprintf(&sb, "\treturn which < %d && size <= sizelist[which] ? buflist[which] : (void*)0;\n", num)
	fmt.Fprintf(&sb, "};\n")
	return sb.String()
}

func sep(i int) string {
	if i > 0 {
		return ", "
	}
	return " "
}
