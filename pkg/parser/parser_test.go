package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doxy-next-gen/pkg/ast"
)

func parse(t *testing.T, content string) *ast.TranslationUnit {
	t.Helper()
	unit, err := New(zerolog.Nop()).Parse(context.Background(), "test.hpp", []byte(content))
	require.NoError(t, err)
	return unit
}

// declsByName indexes every declaration of the unit by qualified name.
func declsByName(unit *ast.TranslationUnit) map[string]*ast.Decl {
	out := make(map[string]*ast.Decl)
	for _, d := range unit.Decls() {
		if _, ok := out[d.QualifiedName()]; !ok {
			out[d.QualifiedName()] = d
		}
	}
	return out
}

func extent(l1, c1, l2, c2 int) ast.Extent {
	return ast.Extent{Start: ast.Location{Line: l1, Column: c1}, End: ast.Location{Line: l2, Column: c2}}
}

func TestBasicNamespaceParsing(t *testing.T) {
	unit := parse(t, `namespace TestNamespace {
    class TestClass {
    public:
        void publicMethod();
    private:
        int privateField;
    };
}`)

	require.Len(t, unit.Root.Children, 1)
	ns := unit.Root.Children[0]
	assert.Equal(t, ast.KindNamespace, ns.Kind)
	assert.Equal(t, "TestNamespace", ns.Name)
	assert.Equal(t, extent(1, 1, 8, 1), ns.Extent)

	require.Len(t, ns.Children, 1)
	class := ns.Children[0]
	assert.Equal(t, ast.KindClass, class.Kind)
	assert.Equal(t, "TestNamespace::TestClass", class.QualifiedName())
	assert.Equal(t, extent(2, 5, 7, 6), class.Extent)

	require.Len(t, class.Children, 2)
	method, field := class.Children[0], class.Children[1]
	assert.Equal(t, ast.KindMethod, method.Kind)
	assert.Equal(t, ast.AccessPublic, method.Access)
	assert.Equal(t, "TestNamespace::TestClass::publicMethod", method.QualifiedName())
	assert.Equal(t, ast.KindField, field.Kind)
	assert.Equal(t, ast.AccessPrivate, field.Access)
}

func TestAccessLevelParsing(t *testing.T) {
	unit := parse(t, `class TestClass {
    void defaultMethod();
public:
    void publicMethod();
    int publicField;
private:
    void privateMethod();
protected:
    void protectedMethod();
public slots:
    void onClicked();
};
struct Plain {
    void method();
};`)

	decls := declsByName(unit)
	tests := map[string]ast.Access{
		"TestClass::defaultMethod":   ast.AccessPrivate,
		"TestClass::publicMethod":    ast.AccessPublic,
		"TestClass::publicField":     ast.AccessPublic,
		"TestClass::privateMethod":   ast.AccessPrivate,
		"TestClass::protectedMethod": ast.AccessProtected,
		"TestClass::onClicked":       ast.AccessPublic,
		"Plain::method":              ast.AccessPublic,
	}
	for name, want := range tests {
		require.Contains(t, decls, name)
		assert.Equal(t, want, decls[name].Access, name)
	}
	assert.Equal(t, ast.KindStruct, decls["Plain"].Kind)
}

func TestMemberExtentIncludesSemicolon(t *testing.T) {
	unit := parse(t, `class Widget {
public:
    void g(); //< Does Y.
};`)

	decls := declsByName(unit)
	assert.Equal(t, extent(3, 5, 3, 13), decls["Widget::g"].Extent)
	assert.Equal(t, extent(1, 1, 4, 2), decls["Widget"].Extent)
	assert.Equal(t, "void g ( ) ;", unit.Spelling(decls["Widget::g"].Extent))
}

func TestConstructorsAndDestructors(t *testing.T) {
	unit := parse(t, `class Foo {
public:
    Foo();
    explicit Foo(int value) : value_(value), other_{1} {}
    virtual ~Foo() = default;
    Foo& operator=(const Foo&) = delete;
private:
    int value_;
};`)

	foo := declsByName(unit)["Foo"]
	require.NotNil(t, foo)

	var kinds []ast.Kind
	var names []string
	for _, child := range foo.Children {
		kinds = append(kinds, child.Kind)
		names = append(names, child.Name)
	}
	assert.Equal(t, []ast.Kind{ast.KindConstructor, ast.KindConstructor, ast.KindDestructor, ast.KindMethod, ast.KindField}, kinds)
	assert.Equal(t, []string{"Foo", "Foo", "~Foo", "operator=", "value_"}, names)
	assert.Equal(t, extent(4, 5, 4, 57), foo.Children[1].Extent)
}

func TestOutOfLineDefinitions(t *testing.T) {
	unit := parse(t, `namespace ns {
class Foo {
public:
    Foo();
    ~Foo();
    int get() const;
protected:
    void helper();
};
}

ns::Foo::Foo() : value_(0) {}
ns::Foo::~Foo() {}
int ns::Foo::get() const { return value_; }
void ns::Foo::helper() {}
void free_function() {}
void Unknown::method() {}
`)

	root := unit.Root.Children
	require.Len(t, root, 7)

	tests := []struct {
		kind   ast.Kind
		name   string
		access ast.Access
	}{
		{ast.KindConstructor, "ns::Foo::Foo", ast.AccessPublic},
		{ast.KindDestructor, "ns::Foo::~Foo", ast.AccessPublic},
		{ast.KindMethod, "ns::Foo::get", ast.AccessPublic},
		{ast.KindMethod, "ns::Foo::helper", ast.AccessProtected},
		{ast.KindFunction, "free_function", ast.AccessNone},
		{ast.KindFunction, "Unknown::method", ast.AccessNone},
	}
	for i, tt := range tests {
		d := root[i+1]
		assert.Equal(t, tt.kind, d.Kind, tt.name)
		assert.Equal(t, tt.name, d.QualifiedName())
		assert.Equal(t, tt.access, d.Access, tt.name)
	}

	// lexically the definitions stay at file scope
	assert.Len(t, declsByName(unit)["ns::Foo"].Children, 4)
	assert.Equal(t, extent(12, 1, 12, 29), root[1].Extent)
}

func TestNestedNamespacesAndRecords(t *testing.T) {
	unit := parse(t, `namespace a::b {
namespace {
struct Outer {
    class Inner {
        void run();
    };
private:
    class Hidden;
};
}
inline namespace v1 {
    void api();
}
}`)

	decls := declsByName(unit)
	require.Contains(t, decls, "a::b::Outer::Inner::run")
	require.Contains(t, decls, "a::b::v1::api")
	assert.Equal(t, ast.AccessPublic, decls["a::b::Outer::Inner"].Access)
	assert.Equal(t, ast.AccessPrivate, decls["a::b::Outer::Hidden"].Access)
	assert.Equal(t, ast.KindClass, decls["a::b::Outer::Hidden"].Kind)
	assert.Equal(t, ast.KindFunction, decls["a::b::v1::api"].Kind)
}

func TestTemplatesAndOperators(t *testing.T) {
	unit := parse(t, `template <typename T>
class Box {
public:
    template <typename U>
    Box(const Box<U>& other);
    T& operator*();
    explicit operator bool() const;
    bool operator==(const Box& rhs) const = default;
    auto size() const -> std::size_t { return n; }
    std::map<int, std::vector<T>> index() noexcept(true);
};`)

	decls := declsByName(unit)
	box := decls["Box"]
	require.NotNil(t, box)
	assert.Equal(t, 1, box.Extent.Start.Line)
	assert.Equal(t, 1, box.Extent.Start.Column)

	var names []string
	for _, child := range box.Children {
		names = append(names, child.Name)
	}
	assert.Equal(t, []string{"Box", "operator*", "operator bool", "operator==", "size", "index"}, names)
	assert.Equal(t, ast.KindConstructor, box.Children[0].Kind)
	assert.Equal(t, 4, box.Children[0].Extent.Start.Line)
}

func TestPreprocessorAndMacros(t *testing.T) {
	unit := parse(t, `#include <vector>
#define EXPORT __attribute__((visibility("default")))
#if defined(FOO) && \
    BAR
class EXPORT Thing {
    Q_OBJECT
public:
    Thing() Q_DECL_NOEXCEPT;
    DECLARE_PROPERTY(int, size)
    void update() override;
};
#endif
`)

	decls := declsByName(unit)
	require.Contains(t, decls, "Thing")
	assert.Equal(t, ast.KindConstructor, decls["Thing::Thing"].Kind)
	assert.Equal(t, ast.KindMethod, decls["Thing::update"].Kind)
	assert.Equal(t, ast.AccessPublic, decls["Thing::update"].Access)

	// comments and directives stay in the unit's token stream
	assert.Equal(t, "#", unit.Tokens[0].Text)

	slots := declsByName(parse(t, "class C { Q_OBJECT\npublic slots:\n void s(); };"))
	require.Contains(t, slots, "C::s")
	assert.Equal(t, ast.KindMethod, slots["C::s"].Kind)
	assert.Equal(t, ast.AccessPublic, slots["C::s"].Access)
}

func TestUnionsEnumsAndAliases(t *testing.T) {
	unit := parse(t, `struct Point {
    int x, y;
    union {
        float f;
        int i;
    } u;
    enum class Axis : int { X, Y };
    using Scalar = float;
    typedef struct { int a; } Legacy;
    friend class Builder;
    friend bool operator<(const Point&, const Point&) { return false; }
    static_assert(sizeof(int) == 4, "int");
};
extern "C" {
    int c_api(void);
}
extern "C" void c_single(void);`)

	point := declsByName(unit)["Point"]
	require.NotNil(t, point)

	var kinds []ast.Kind
	for _, child := range point.Children {
		kinds = append(kinds, child.Kind)
	}
	assert.Equal(t, []ast.Kind{ast.KindField, ast.KindOther, ast.KindEnum}, kinds)

	union := point.Children[1]
	require.Len(t, union.Children, 2)
	assert.Equal(t, ast.KindField, union.Children[0].Kind)

	decls := declsByName(unit)
	assert.Equal(t, ast.KindFunction, decls["c_api"].Kind)
	assert.Equal(t, ast.KindFunction, decls["c_single"].Kind)
}

func TestFunctionTryBlock(t *testing.T) {
	unit := parse(t, `class Conn {
    Conn() try : sock_(open()) {
    } catch (const std::exception& e) {
    }
    void close();
};`)

	conn := declsByName(unit)["Conn"]
	require.Len(t, conn.Children, 2)
	assert.Equal(t, extent(2, 5, 4, 5), conn.Children[0].Extent)
	assert.Equal(t, "close", conn.Children[1].Name)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
		column  int
		msg     string
	}{
		{"UnclosedClass", "class A {\n  void f();\n", 3, 1, "expected '}' before end of file"},
		{"StrayBrace", "int x;\n}", 2, 1, "unexpected '}'"},
		{"UnterminatedString", "int x = \"abc;\n", 1, 9, "unterminated string literal"},
		{"MissingSemicolon", "int x", 1, 6, "expected ';'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(zerolog.Nop()).Parse(context.Background(), "bad.cpp", []byte(tt.content))
			require.Error(t, err)

			var perr *ast.ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "bad.cpp", perr.Filename)
			assert.Equal(t, ast.Location{Line: tt.line, Column: tt.column}, perr.Location)
			assert.Equal(t, tt.msg, perr.Msg)
		})
	}
}

func TestParseCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFrontend(zerolog.Nop()).Parse(ctx, "a.cpp", []byte("int x;"))
	require.ErrorIs(t, err, context.Canceled)
}
