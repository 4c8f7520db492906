package parser

import (
	"testing"

	"wgslfront/internal/testkit"
)

func TestSpanInvariants(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"const expressions", "const a = -(1 + 2) * 3;\nconst b = a << 2u;\n"},
		{"struct and var", "struct S { @size(16) x: f32, y: vec3<f32> }\n@group(0) @binding(0) var<uniform> s: S;\n"},
		{"pointers", "fn f(p: ptr<function, i32>) -> i32 { return *p + (*p); }\n"},
		{"members and indices", "var<private> m: array<vec4<f32>, 4>;\nfn g() -> f32 { return m[1].x + m[2][3]; }\n"},
		{"for loop", "fn h() { var s = 0; for (var i = 0; i < 4; i++) { s += i; } }\n"},
		{"while and switch", `fn k(x: i32) {
    while x > 0 { break; }
    switch x {
        case 1, 2: { return; }
        default { }
    }
    loop { continuing { break if x == 0; } }
}
`},
		{"entry point", "@compute @workgroup_size(8, 8)\nfn main(@builtin(global_invocation_id) id: vec3<u32>) { let v = bitcast<f32>(id.x); _ = v; }\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := testFile(tt.src)
			unit, err := ParseFile(file, Options{})
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if err := testkit.CheckSpanInvariants(unit, file); err != nil {
				t.Error(err)
			}
		})
	}
}
