package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlfy/schema"
)

func TestComposeColumnSelection(t *testing.T) {
	lib := newLibrary(t)
	join := MustJoin(lib.authors, lib.books, JoinLeft, On{Left: "productName", Right: "ProductID"})

	tests := []struct {
		name     string
		columns  []string
		expected string
	}{
		{
			name:     "ResolvedOrderNotRequestOrder",
			columns:  []string{"Title", "AuthorID"},
			expected: "SELECT Author.ID AS AuthorID, Book.Title AS Title FROM DBAUTH AS Author LEFT JOIN DBBKS AS Book ON Author.productName = Book.ProductID",
		},
		{
			name:     "UnknownNamesIgnored",
			columns:  []string{"LastName", "Publisher"},
			expected: "SELECT Author.LNAM AS LastName FROM DBAUTH AS Author LEFT JOIN DBBKS AS Book ON Author.productName = Book.ProductID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := lib.authors.Compose(Request{Columns: tt.columns, Joins: []Join{join}})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sql)
		})
	}
}

func TestComposeNoColumns(t *testing.T) {
	lib := newLibrary(t)

	_, err := lib.authors.Compose(Request{Columns: []string{"Publisher"}})
	assert.ErrorIs(t, err, ErrNoColumns)

	empty, err := lib.reg.GetOrCreate(schema.Map("Empty"))
	require.NoError(t, err)
	_, err = empty.SelectAll()
	assert.ErrorIs(t, err, ErrNoColumns)

	assert.Zero(t, lib.authors.Stats().Entries)
}

func TestComposeEmptyGroupsOmitWhere(t *testing.T) {
	lib := newLibrary(t)
	last := MustFilter(lib.authors.MustColumn("LastName"), EqualTo, "Smith")

	tests := []struct {
		name     string
		where    [][]Filter
		expected string
	}{
		{"Nil", nil, "SELECT Author.LNAM AS LastName FROM DBAUTH AS Author"},
		{"OnlyEmptyGroups", [][]Filter{{}, nil}, "SELECT Author.LNAM AS LastName FROM DBAUTH AS Author"},
		{"EmptyGroupsSkipped", [][]Filter{{}, {last}, {}}, "SELECT Author.LNAM AS LastName FROM DBAUTH AS Author WHERE (Author.LNAM = @LastName)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := lib.authors.Compose(Request{Columns: []string{"LastName"}, Where: tt.where})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sql)
		})
	}
}

func TestComposeGroupingIsDistinct(t *testing.T) {
	lib := newLibrary(t)
	first := MustFilter(lib.authors.MustColumn("FirstName"), EqualTo, "Ada")
	last := MustFilter(lib.authors.MustColumn("LastName"), EqualTo, "Lovelace")

	and, err := lib.authors.SelectGroups([]string{"AuthorID"}, [][]Filter{{first, last}})
	require.NoError(t, err)
	or, err := lib.authors.SelectGroups([]string{"AuthorID"}, [][]Filter{{first}, {last}})
	require.NoError(t, err)

	assert.Equal(t, "SELECT Author.ID AS AuthorID FROM DBAUTH AS Author WHERE (Author.FNAM = @FirstName AND Author.LNAM = @LastName)", and)
	assert.Equal(t, "SELECT Author.ID AS AuthorID FROM DBAUTH AS Author WHERE (Author.FNAM = @FirstName) OR (Author.LNAM = @LastName)", or)
	assert.Equal(t, uint64(2), lib.authors.Stats().Misses)
}

func TestComposeMultipleOnClauses(t *testing.T) {
	lib := newLibrary(t)
	join := MustJoin(lib.authors, lib.books, JoinInner,
		On{Left: "productName", Right: "ProductID"},
		On{Left: "ID", Right: "AuthorRef"},
	)

	sql, err := lib.authors.Compose(Request{Columns: []string{"Title"}, Joins: []Join{join}})
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT Book.Title AS Title FROM DBAUTH AS Author INNER JOIN DBBKS AS Book ON Author.productName = Book.ProductID AND Author.ID = Book.AuthorRef",
		sql)
}

func TestComposeJoinKinds(t *testing.T) {
	lib := newLibrary(t)

	for _, kind := range []JoinKind{JoinLeft, JoinRight, JoinInner, JoinFull} {
		t.Run(kind.String(), func(t *testing.T) {
			join := MustJoin(lib.authors, lib.books, kind, On{Left: "productName", Right: "ProductID"})
			sql, err := lib.authors.Compose(Request{Columns: []string{"Title"}, Joins: []Join{join}})
			require.NoError(t, err)
			assert.Equal(t,
				"SELECT Book.Title AS Title FROM DBAUTH AS Author "+kind.String()+" JOIN DBBKS AS Book ON Author.productName = Book.ProductID",
				sql)
		})
	}
}

func TestComposeLooseColumnDedup(t *testing.T) {
	tests := []struct {
		name     string
		strict   bool
		expected string
	}{
		{
			name:     "Loose",
			expected: "SELECT Order.ID AS ID, Order.CustomerID AS CustomerID, Customer.Name AS Name FROM Order AS Order INNER JOIN Customer AS Customer ON Order.CustomerID = Customer.ID",
		},
		{
			name:     "Strict",
			strict:   true,
			expected: "SELECT Order.ID AS ID, Order.CustomerID AS CustomerID, Customer.ID AS ID, Customer.Name AS Name FROM Order AS Order INNER JOIN Customer AS Customer ON Order.CustomerID = Customer.ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry(WithStrictColumns(tt.strict))
			orders := reg.MustGetOrCreate(orderMapping)
			customers := reg.MustGetOrCreate(customerMapping)

			join := MustJoin(orders, customers, JoinInner, On{Left: "CustomerID", Right: "ID"})
			sql, err := orders.Compose(Request{Joins: []Join{join}})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sql)
		})
	}
}

func TestComposeCache(t *testing.T) {
	lib := newLibrary(t)
	last := MustFilter(lib.authors.MustColumn("LastName"), EqualTo, "Smith")
	join := MustJoin(lib.authors, lib.books, JoinLeft, On{Left: "productName", Right: "ProductID"})
	req := Request{Where: [][]Filter{{last}}, Joins: []Join{join}}

	first, err := lib.authors.Compose(req)
	require.NoError(t, err)
	second, err := lib.authors.Compose(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1, Entries: 1}, lib.authors.Stats())

	// a different literal is a different shape but renders the same text
	other := MustFilter(lib.authors.MustColumn("LastName"), EqualTo, "Jones")
	third, err := lib.authors.Compose(Request{Where: [][]Filter{{other}}, Joins: []Join{join}})
	require.NoError(t, err)
	assert.Equal(t, first, third)
	assert.Equal(t, CacheStats{Hits: 1, Misses: 2, Entries: 2}, lib.authors.Stats())

	assert.Zero(t, lib.books.Stats().Entries)
}

func TestComposeBoundedCache(t *testing.T) {
	lib := newLibrary(t, WithCacheSize(1))

	_, err := lib.authors.Compose(Request{Columns: []string{"LastName"}})
	require.NoError(t, err)
	_, err = lib.authors.Compose(Request{Columns: []string{"FirstName"}})
	require.NoError(t, err)
	_, err = lib.authors.Compose(Request{Columns: []string{"LastName"}})
	require.NoError(t, err)

	assert.Equal(t, CacheStats{Hits: 0, Misses: 3, Entries: 1}, lib.authors.Stats())
}

func TestComposeErrors(t *testing.T) {
	lib := newLibrary(t)
	col := lib.authors.MustColumn("LastName")
	on := On{Left: "productName", Right: "ProductID"}

	tests := []struct {
		name   string
		req    Request
		target error
		config bool
	}{
		{
			name:   "NilFilterColumn",
			req:    Request{Where: [][]Filter{{{Operator: EqualTo, Value: 1}}}},
			target: ErrNilColumn,
		},
		{
			name:   "NilJoinSide",
			req:    Request{Joins: []Join{{Left: lib.authors, Kind: JoinLeft, Clauses: []On{on}}}},
			target: ErrNilRegistry,
		},
		{
			name:   "JoinWithoutClauses",
			req:    Request{Joins: []Join{{Left: lib.authors, Right: lib.books, Kind: JoinLeft}}},
			target: ErrNoJoinClauses,
		},
		{
			name:   "UnknownOperator",
			req:    Request{Where: [][]Filter{{{Column: col, Operator: Operator(99), Value: 1}}}},
			target: ErrUnknownOperator,
			config: true,
		},
		{
			name:   "UnknownJoinKind",
			req:    Request{Joins: []Join{{Left: lib.authors, Right: lib.books, Kind: JoinKind(42), Clauses: []On{on}}}},
			target: ErrUnknownJoinKind,
			config: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := lib.authors.Compose(tt.req)
			assert.Empty(t, sql)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.config, IsConfigurationError(err))
		})
	}

	assert.Zero(t, lib.authors.Stats().Entries, "failed renders are never cached")
}

func TestComposeNilStringerValue(t *testing.T) {
	lib := newLibrary(t)
	f := MustFilter(lib.authors.MustColumn("LastName"), EqualTo, (*url.URL)(nil))

	var sql string
	var err error
	require.NotPanics(t, func() {
		sql, err = lib.authors.Select([]string{"LastName"}, []Filter{f})
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT Author.LNAM AS LastName FROM DBAUTH AS Author WHERE (Author.LNAM = @LastName)", sql)
}

func TestFingerprintDeterministic(t *testing.T) {
	a := newLibrary(t)
	b := newLibrary(t)

	build := func(lib library) uint32 {
		last := MustFilter(lib.authors.MustColumn("LastName"), Like, "S%")
		join := MustJoin(lib.authors, lib.books, JoinLeft, On{Left: "productName", Right: "ProductID"})
		columns := lib.authors.resolveColumns(nil, []Join{join})
		return lib.authors.fingerprint(columns, [][]Filter{{last}}, []Join{join})
	}

	assert.Equal(t, build(a), build(b), "separate registries agree on the same shape")
}

func TestFingerprintSensitivity(t *testing.T) {
	lib := newLibrary(t)
	cols := lib.authors.resolveColumns(nil, nil)
	last := lib.authors.MustColumn("LastName")
	first := lib.authors.MustColumn("FirstName")

	base := lib.authors.fingerprint(cols, [][]Filter{{MustFilter(last, EqualTo, "x")}}, nil)

	variants := map[string]uint32{
		"Operator": lib.authors.fingerprint(cols, [][]Filter{{MustFilter(last, Like, "x")}}, nil),
		"Value":    lib.authors.fingerprint(cols, [][]Filter{{MustFilter(last, EqualTo, "y")}}, nil),
		"Column":   lib.authors.fingerprint(cols, [][]Filter{{MustFilter(first, EqualTo, "x")}}, nil),
		"NoFilter": lib.authors.fingerprint(cols, nil, nil),
		"Columns":  lib.authors.fingerprint(cols[:1], [][]Filter{{MustFilter(last, EqualTo, "x")}}, nil),
		"Join": lib.authors.fingerprint(cols, [][]Filter{{MustFilter(last, EqualTo, "x")}},
			[]Join{MustJoin(lib.authors, lib.books, JoinLeft, On{Left: "a", Right: "b"})}),
	}

	for name, fp := range variants {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, base, fp)
		})
	}
}
