package domain

// Noms des tables sources
const (
	TableProducts   = "products"
	TableOrderItems = "order_items"
	TableOrders     = "orders"
	TableCategories = "categories"
	TableStaffs     = "staffs"
)

// Tables liste les cinq tables dans l'ordre de chargement
var Tables = []string{
	TableProducts,
	TableOrderItems,
	TableOrders,
	TableCategories,
	TableStaffs,
}

// Colonnes prix désambiguïsées
// "list_price" existe dans products (prix catalogue actuel) et dans
// order_items (prix au moment de la vente). Les deux sont renommées AVANT
// toute jointure pour qu'aucune ne puisse être prise pour l'autre.
const (
	ColumnListPriceOrder   = "list_price_order"
	ColumnListPriceProduct = "list_price_product"
)

// Schema décrit les colonnes attendues d'une table source
type Schema struct {
	Table    string
	Required []string
	Optional []string
	Renames  map[string]string
}

// Schemas schéma canonique de chaque table
var Schemas = map[string]Schema{
	TableProducts: {
		Table:    TableProducts,
		Required: []string{"product_id", "product_name", "category_id", "model_year", ColumnListPriceProduct},
		Optional: []string{"brand_id"},
		Renames:  map[string]string{"list_price": ColumnListPriceProduct},
	},
	TableOrderItems: {
		Table:    TableOrderItems,
		Required: []string{"order_id", "product_id", "quantity", ColumnListPriceOrder, "discount"},
		Optional: []string{"item_id"},
		Renames:  map[string]string{"list_price": ColumnListPriceOrder},
	},
	TableOrders: {
		Table:    TableOrders,
		Required: []string{"order_id", "customer_id", "staff_id", "order_date"},
		Optional: []string{"store_id"},
	},
	TableCategories: {
		Table:    TableCategories,
		Required: []string{"category_id", "category_name"},
	},
	TableStaffs: {
		Table:    TableStaffs,
		Required: []string{"staff_id", "first_name", "last_name"},
	},
}

// Columns retourne toutes les colonnes connues (obligatoires puis optionnelles)
func (s Schema) Columns() []string {
	cols := make([]string, 0, len(s.Required)+len(s.Optional))
	cols = append(cols, s.Required...)
	return append(cols, s.Optional...)
}

// SourceColumn retourne le nom de colonne tel qu'il apparaît dans la source
// (inverse du renommage), utile pour interroger une base au schéma d'origine.
func (s Schema) SourceColumn(column string) string {
	for from, to := range s.Renames {
		if to == column {
			return from
		}
	}
	return column
}

// boundTable table brute associée à son index de colonnes canonique
type boundTable struct {
	raw   *RawTable
	index map[string]int
}

// bind valide l'en-tête de la table contre son schéma
func (s Schema) bind(raw *RawTable) (*boundTable, error) {
	if raw == nil {
		return nil, &LoadError{Table: s.Table, Err: ErrMissingTable}
	}
	index := raw.columnIndex(s.Renames)
	for _, col := range s.Required {
		if _, ok := index[col]; !ok {
			return nil, &LoadError{Table: s.Table, Column: col, Err: ErrMissingColumn}
		}
	}
	return &boundTable{raw: raw, index: index}, nil
}

// value retourne la cellule d'une colonne ("" si colonne optionnelle absente)
func (b *boundTable) value(row []string, column string) string {
	i, ok := b.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
