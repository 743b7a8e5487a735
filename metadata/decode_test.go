package metadata

import (
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func sampleClassPayload(t *testing.T) []byte {
	t.Helper()
	table := NewStringTable()
	list := table.Ref("loom/collections/List")
	elem := table.Ref("E")
	get := table.Ref("get")
	index := table.Ref("index")
	intName := table.Ref("loom/Int")

	c := &Class{
		FqName: list,
		Flags:  PackFlags(ClassKindInterface, VisibilityPublic, ModalityAbstract),
		TypeParameters: []*TypeParameter{
			{Name: elem, Variance: VarianceOut},
		},
		Functions: []*Function{
			{
				Name:  get,
				Flags: PackFlags(ClassKindClass, VisibilityPublic, ModalityAbstract),
				ValueParameters: []*ValueParameter{
					{Name: index, Type: &Type{ClassName: &intName}},
				},
				ReturnType: &Type{TypeParameterName: &elem, Nullable: true},
			},
		},
	}
	return MarshalClassPayload(table, c)
}

func TestReadClassData(t *testing.T) {
	payload := sampleClassPayload(t)

	data, err := ReadClassData(payload)
	if err != nil {
		t.Fatalf("ReadClassData: %v", err)
	}

	id, ok := data.Names.ClassID(data.Class.FqName)
	if !ok {
		t.Fatal("fq_name index not resolvable")
	}
	if id.String() != "loom/collections/List" {
		t.Errorf("fq_name: got %q", id)
	}
	if got := data.Class.Flags.ClassKind(); got != ClassKindInterface {
		t.Errorf("class kind: got %v", got)
	}

	if len(data.Class.TypeParameters) != 1 {
		t.Fatalf("type parameters: got %d, want 1", len(data.Class.TypeParameters))
	}
	tp := data.Class.TypeParameters[0]
	if name, _ := data.Names.String(tp.Name); name != "E" {
		t.Errorf("type parameter name: got %q", name)
	}
	if tp.Variance != VarianceOut {
		t.Errorf("type parameter variance: got %v", tp.Variance)
	}

	if len(data.Class.Functions) != 1 {
		t.Fatalf("functions: got %d, want 1", len(data.Class.Functions))
	}
	fn := data.Class.Functions[0]
	if name, _ := data.Names.String(fn.Name); name != "get" {
		t.Errorf("function name: got %q", name)
	}
	if len(fn.ValueParameters) != 1 {
		t.Fatalf("value parameters: got %d, want 1", len(fn.ValueParameters))
	}
	vp := fn.ValueParameters[0]
	if vp.Type == nil || vp.Type.ClassName == nil {
		t.Fatal("value parameter type missing class name")
	}
	if vid, _ := data.Names.ClassID(*vp.Type.ClassName); vid.String() != "loom/Int" {
		t.Errorf("value parameter type: got %q", vid)
	}
	rt := fn.ReturnType
	if rt == nil || rt.TypeParameterName == nil {
		t.Fatal("return type missing type parameter reference")
	}
	if name, _ := data.Names.String(*rt.TypeParameterName); name != "E" {
		t.Errorf("return type parameter: got %q", name)
	}
	if !rt.Nullable {
		t.Error("return type should be nullable")
	}
}

func TestReadPackageData(t *testing.T) {
	table := NewStringTable()
	max := table.Ref("max")
	intName := table.Ref("loom/Int")
	pi := table.Ref("PI")
	double := table.Ref("loom/Double")

	p := &Package{
		Functions: []*Function{
			{Name: max, ReturnType: &Type{ClassName: &intName}},
		},
		Properties: []*Property{
			{
				Name:     pi,
				Type:     &Type{ClassName: &double},
				Constant: &Constant{Kind: ConstantDouble, DoubleValue: 3.141592653589793},
			},
		},
	}

	data, err := ReadPackageData(MarshalPackagePayload(table, p))
	if err != nil {
		t.Fatalf("ReadPackageData: %v", err)
	}
	if len(data.Package.Functions) != 1 || len(data.Package.Properties) != 1 {
		t.Fatalf("got %d functions, %d properties", len(data.Package.Functions), len(data.Package.Properties))
	}
	if name, _ := data.Names.String(data.Package.Functions[0].Name); name != "max" {
		t.Errorf("function name: got %q", name)
	}
	prop := data.Package.Properties[0]
	if prop.Constant == nil || prop.Constant.Kind != ConstantDouble {
		t.Fatal("property constant missing")
	}
	if prop.Constant.DoubleValue != 3.141592653589793 {
		t.Errorf("constant value: got %v", prop.Constant.DoubleValue)
	}
}

func TestReadClassDataMalformed(t *testing.T) {
	valid := sampleClassPayload(t)

	missingRoot := protowire.AppendTag(nil, 1, protowire.BytesType)
	missingRoot = protowire.AppendString(missingRoot, "orphan")

	wrongWireType := protowire.AppendTag(nil, 2, protowire.VarintType)
	wrongWireType = protowire.AppendVarint(wrongWireType, 7)

	packedList := protowire.AppendTag(nil, 8, protowire.BytesType)
	packedList = protowire.AppendBytes(packedList, protowire.AppendVarint(nil, 1<<35))
	oversizedPacked := protowire.AppendTag(nil, 1, protowire.BytesType)
	oversizedPacked = protowire.AppendString(oversizedPacked, "com/example/C")
	oversizedPacked = protowire.AppendTag(oversizedPacked, 2, protowire.BytesType)
	oversizedPacked = protowire.AppendBytes(oversizedPacked, packedList)

	cases := []struct {
		name    string
		payload []byte
	}{
		{"truncated", valid[:len(valid)-1]},
		{"missing root record", missingRoot},
		{"bare varint tag", []byte{0x08}},
		{"empty", nil},
		{"root record has wrong wire type", wrongWireType},
		{"packed index overflows uint32", oversizedPacked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadClassData(tc.payload); err == nil {
				t.Error("expected error")
			}
		})
	}
}
