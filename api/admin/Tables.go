package admin

import (
	"net/http"

	"backend/database"
	"backend/server/util"

	"gorm.io/gorm"
)

type FieldInfo struct {
	Name       string `json:"name"`
	NameRaw    string `json:"name_raw"`
	Type       string `json:"type"`
	IsPrimary  bool   `json:"is_primary"`
	IsNullable bool   `json:"is_nullable"`
}

type TableInfo struct {
	Name   string      `json:"name"`
	Rows   int64       `json:"rows"`
	Fields []FieldInfo `json:"fields,omitempty"`
}

// hiddenFields never leave the server, not even for admins.
var hiddenFields = map[string]bool{"PasswordHash": true, "Token": true}

func tableInfo(DB *gorm.DB, model interface{}, withFields bool) (TableInfo, error) {
	stmt := &gorm.Statement{DB: DB}
	if err := stmt.Parse(model); err != nil {
		return TableInfo{}, err
	}

	info := TableInfo{Name: stmt.Schema.Table}
	if err := DB.Model(model).Count(&info.Rows).Error; err != nil {
		return TableInfo{}, err
	}
	if !withFields {
		return info, nil
	}
	for _, field := range stmt.Schema.Fields {
		if field.DBName == "" || hiddenFields[field.Name] {
			continue
		}
		info.Fields = append(info.Fields, FieldInfo{
			Name:       field.Name,
			NameRaw:    field.DBName,
			Type:       string(field.DataType),
			IsPrimary:  field.PrimaryKey,
			IsNullable: !field.NotNull,
		})
	}
	return info, nil
}

// ListTables lists every migrated table with its row count
//
//	@Summary      List tables
//	@Tags         admin
//	@Produce      json
//	@Success      200  {object}  map[string][]TableInfo
//	@Failure      403  {string}  string  "User is not an admin"
//	@Router       /api/v1/admin/tables [get]
func (h *AdminHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	tables := make([]TableInfo, 0, len(database.Tabels))
	for _, model := range database.Tabels {
		info, err := tableInfo(scope.DB, model, false)
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		tables = append(tables, info)
	}
	util.WriteJSON(w, http.StatusOK, map[string][]TableInfo{"tables": tables})
}

// GetTableInfo describes the columns of one table
//
//	@Summary      Describe a table
//	@Tags         admin
//	@Produce      json
//	@Param        table_name path string true "Table name"
//	@Success      200  {object}  TableInfo
//	@Failure      403  {string}  string  "User is not an admin"
//	@Failure      404  {string}  string  "Table not found"
//	@Router       /api/v1/admin/tables/{table_name} [get]
func (h *AdminHandler) GetTableInfo(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	tableName := r.PathValue("table_name")
	for _, model := range database.Tabels {
		stmt := &gorm.Statement{DB: scope.DB}
		if err := stmt.Parse(model); err != nil || stmt.Schema.Table != tableName {
			continue
		}
		info, err := tableInfo(scope.DB, model, true)
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		util.WriteJSON(w, http.StatusOK, info)
		return
	}
	http.Error(w, "Table not found", http.StatusNotFound)
}
