package templexp_test

import (
	"fmt"

	"github.com/lwmacct/261019-go-proginfo/pkg/templexp"
)

// Example_substitute 演示用解析后的路径填充模板。
func Example_substitute() {
	result, _ := templexp.Substitute("Config at $cfgFile", map[string]string{
		"cfgFile": "/repo/build/app.cfg",
	})
	fmt.Println(result)

	// Output:
	// Config at /repo/build/app.cfg
}

// Example_escape 演示 "$$" 字面量与不完整占位符的原样输出。
func Example_escape() {
	result, _ := templexp.Substitute("price: $$10, ${rom}.bin, $ alone", map[string]string{
		"rom": "/out/rom",
	})
	fmt.Println(result)

	// Output:
	// price: $10, /out/rom.bin, $ alone
}

// Example_missingKey 演示缺失占位符时的错误。
func Example_missingKey() {
	_, err := templexp.Substitute("mem: $memFile", map[string]string{})
	fmt.Println(err)

	// Output:
	// templexp: no value for placeholder $memFile (line 1, column 6)
}
