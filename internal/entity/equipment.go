package entity

type Equipment struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Condition string `json:"condition"`
	Quantity  int    `json:"quantity"`
	// Available - справочное поле для витрины. Занятость по датам
	// определяется только по активным заявкам, не по этому счетчику.
	Available int `json:"available"`
}

func NewEquipment(name, category, condition string, quantity int) Equipment {
	return Equipment{
		Name:      name,
		Category:  category,
		Condition: condition,
		Quantity:  quantity,
		Available: quantity,
	}
}
