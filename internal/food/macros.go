// internal/food/macros.go

package food

// Macros 為營養素加總（單位：公克），屬衍生狀態。
type Macros struct {
	Protein int `json:"protein"`
	Fat     int `json:"fat"`
	Carbs   int `json:"carbs"`
}

// Calories 以 4/9/4 kcal 換算總熱量。
func (m Macros) Calories() int {
	return 4*m.Protein + 9*m.Fat + 4*m.Carbs
}

// Add 回傳 m 與 o 逐項相加的結果。
func (m Macros) Add(o Macros) Macros {
	return Macros{Protein: m.Protein + o.Protein, Fat: m.Fat + o.Fat, Carbs: m.Carbs + o.Carbs}
}

// Total 加總一組 Food 的營養素；空切片回傳零值。
func Total(foods []Food) Macros {
	var m Macros
	for _, f := range foods {
		m = m.Add(f.Macros())
	}
	return m
}
