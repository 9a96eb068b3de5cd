package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("d.id", "d.name").
		From("deck d").
		Join("JOIN competition c ON c.id = d.competition_id").
		Where(Eq("c.name", "PDT 2.05"), IsNotNull("d.archetype_id")).
		OrderBy("d.finish", "d.id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT d.id, d.name FROM deck d JOIN competition c ON c.id = d.competition_id WHERE c.name = $1 AND d.archetype_id IS NOT NULL ORDER BY d.finish, d.id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "PDT 2.05" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_AnyAndExpr(t *testing.T) {
	names := []string{"island", "mountain"}
	query, args, err := Select("name").
		From("card").
		Where(Any("LOWER(name)", names), Expr("name <> ?", "Swamp")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT name FROM card WHERE LOWER(name) = ANY($1) AND name <> $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != "Swamp" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_RequiresColumnsAndTable(t *testing.T) {
	if _, _, err := Select().From("deck").ToSQL(); err == nil {
		t.Fatalf("expected error for select without columns")
	}
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error for select without table")
	}
}

func TestExpr_LeavesSurplusMarks(t *testing.T) {
	query, args, err := Select("id").From("deck").Where(Expr("name = ? OR name = ?", "a")).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM deck WHERE name = $1 OR name = ?" || len(args) != 1 {
		t.Fatalf("unexpected query=%s args=%+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("competition").
		Columns("name", "series_name").
		Values("PDT 2.05", "Penny Dreadful Thursdays").
		Suffix("ON CONFLICT (name) DO NOTHING").
		Returning("id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO competition (name, series_name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "PDT 2.05" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_MultipleRows(t *testing.T) {
	query, args, err := InsertInto("deck_card").
		Columns("deck_id", "card", "n").
		Values(1, "Island", 4).
		Values(1, "Negate", 2).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO deck_card (deck_id, card, n) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RejectsShortRow(t *testing.T) {
	_, _, err := InsertInto("deck_card").Columns("deck_id", "card").Values(1).ToSQL()
	if err == nil {
		t.Fatalf("expected error for row with missing values")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("deck").
		Set("archetype_id", int64(7)).
		Set("reported_archetype", "Burn").
		Where(Eq("id", int64(3))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE deck SET archetype_id = $1, reported_archetype = $2 WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != int64(7) || args[2] != int64(3) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := Update("deck").Set("finish", 1).ToSQL(); err == nil {
		t.Fatalf("expected unconditioned update to be rejected")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("competition_series").Where(Eq("name", "PDT")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM competition_series WHERE name = $1" || len(args) != 1 {
		t.Fatalf("unexpected query=%s args=%+v", query, args)
	}

	if _, _, err := DeleteFrom("competition_series").ToSQL(); err == nil {
		t.Fatalf("expected unconditioned delete to be rejected")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Alias    string `db:"alias"`
		Username string `db:"mtgo_username"`
		skipped  string
		Ignored  string `db:"-"`
	}

	query, args, err := InsertModel("person_alias", row{Alias: "jsmith", Username: "j_smith_mtgo"}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}
	if query != "INSERT INTO person_alias (alias, mtgo_username) VALUES ($1, $2)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[1] != "j_smith_mtgo" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	var nilRow *struct {
		Name string `db:"name"`
	}
	if _, _, err := InsertModel("competition", nilRow, ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
	if _, _, err := InsertModel("competition", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	if _, _, err := InsertModel("competition", struct{ Name string }{Name: "x"}, ""); err == nil {
		t.Fatalf("expected error for model without db columns")
	}
}
