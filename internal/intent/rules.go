package intent

import (
	"strings"

	"github.com/campusnav/hku-mapbot-go/internal/catalog"
	"github.com/campusnav/hku-mapbot-go/internal/stringutil"
)

// rule pairs substring triggers with the record to return when any
// trigger appears in the lower-cased query.
type rule struct {
	triggers []string
	record   Record
}

// fallbackRules are evaluated in order; the first matching rule wins, so
// priority is the position in this table.
var fallbackRules = []rule{
	{
		triggers: []string{"运动", "sport", "gym", "健身", "游泳", "羽毛球", "篮球", "跑步"},
		record: Record{
			Intent:       "find_sports_facility",
			Keywords:     []string{"运动", "体育", "sports", "gym", "fitness", "swimming", "游泳", "sport centre", "sports ground"},
			CategoryHint: catalog.CategoryFacility,
		},
	},
	{
		triggers: []string{"休息", "rest", "座位", "lounge", "坐", "sitting", "relax"},
		record: Record{
			Intent:       "find_rest_area",
			Keywords:     []string{"休息", "rest", "lounge", "休息室", "common room", "座位", "sitting area", "student lounge"},
			CategoryHint: catalog.CategoryFacility,
		},
	},
	{
		triggers: []string{"吃", "饭", "餐", "canteen", "restaurant", "cafe", "咖啡", "食堂"},
		record: Record{
			Intent:          "find_dining",
			Keywords:        []string{"餐厅", "食堂", "canteen", "restaurant", "dining", "cafe", "咖啡", "coffee", "catering"},
			CategoryHint:    catalog.CategoryFacility,
			SubcategoryHint: "Catering Outlets",
		},
	},
	{
		triggers: []string{"学习", "自习", "study", "library", "图书", "读书"},
		record: Record{
			Intent:          "find_study_space",
			Keywords:        []string{"图书馆", "library", "study", "自习室", "reading room", "学习空间"},
			CategoryHint:    catalog.CategoryFacility,
			SubcategoryHint: "Libraries",
		},
	},
	{
		triggers: []string{"医", "health", "clinic", "医疗", "诊所", "看病"},
		record: Record{
			Intent:          "find_health_service",
			Keywords:        []string{"health", "clinic", "medical", "医疗", "诊所", "health centre", "dental", "medical unit"},
			CategoryHint:    catalog.CategoryFacility,
			SubcategoryHint: "Health Services",
		},
	},
	{
		triggers: []string{"打印", "print", "复印", "copy"},
		record: Record{
			Intent:          "find_printing",
			Keywords:        []string{"print", "打印", "printing", "copy", "复印", "computer", "computing"},
			CategoryHint:    catalog.CategoryFacility,
			SubcategoryHint: "Computing Services",
		},
	},
	{
		triggers: []string{"停车", "parking", "泊车", "park", "车位"},
		record: Record{
			Intent:          "find_parking",
			Keywords:        []string{"parking", "停车", "泊车", "car park"},
			CategoryHint:    catalog.CategoryFacility,
			SubcategoryHint: "Parking",
		},
	},
	{
		triggers: []string{"游泳", "swimming", "pool", "游泳池"},
		record: Record{
			Intent:          "find_swimming",
			Keywords:        []string{"swimming", "游泳", "pool", "游泳池"},
			CategoryHint:    catalog.CategoryFacility,
			SubcategoryHint: "Sports",
		},
	},
	{
		triggers: []string{"厕所", "toilet", "washroom", "restroom", "洗手间", "卫生间"},
		record: Record{
			Intent:       "find_toilet",
			Keywords:     []string{"toilet", "厕所", "washroom", "restroom", "洗手间"},
			CategoryHint: catalog.CategoryFacility,
		},
	},
	{
		triggers: []string{"银行", "bank", "atm", "取钱", "存钱"},
		record: Record{
			Intent:          "find_bank",
			Keywords:        []string{"bank", "银行", "banking", "atm"},
			CategoryHint:    catalog.CategoryFacility,
			SubcategoryHint: "Banking Services",
		},
	},
}

// matchRules returns the first rule record whose trigger is contained in
// the normalized query.
func matchRules(query string) (Record, bool) {
	ql := stringutil.Normalize(query)
	for _, r := range fallbackRules {
		for _, trigger := range r.triggers {
			if strings.Contains(ql, trigger) {
				return r.record, true
			}
		}
	}
	return Record{}, false
}
