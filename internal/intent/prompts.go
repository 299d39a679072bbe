package intent

import "fmt"

// intentPromptTemplate asks for bare JSON so the reply can be decoded
// without scraping prose. Examples cover both functional queries and
// direct place names because the model tends to over-classify without
// them.
const intentPromptTemplate = `你是HKU校园导航助手。分析用户查询，返回JSON格式（不要其他文字）。

查询："%s"

任务：识别意图并生成中英文关键词（包含同义词）

JSON格式：
{
  "intent": "意图名称",
  "keywords": ["关键词1", "关键词2", ...],
  "category_hint": "building/department/facility"
}

参考示例：

功能类（生成相关设施关键词）：
"我想运动" → {"intent":"find_sports","keywords":["运动","sports","gym","fitness","游泳","swimming"],"category_hint":"facility"}
"哪里可以吃饭" → {"intent":"find_dining","keywords":["餐厅","canteen","restaurant","食堂","cafe","dining"],"category_hint":"facility"}
"学校有银行吗" → {"intent":"find_bank","keywords":["bank","银行","banking","atm"],"category_hint":"facility"}
"哪里可以停车" → {"intent":"find_parking","keywords":["parking","停车","泊车","car park"],"category_hint":"facility"}

地点类（提取官方名称）：
"Main Building" → {"intent":"find_place","keywords":["Main Building","main","大楼"],"category_hint":"building"}
"图书馆" → {"intent":"find_library","keywords":["Library","图书馆","library building"],"category_hint":"building"}

现在处理："%s"
仅返回JSON：`

func buildIntentPrompt(query string) string {
	return fmt.Sprintf(intentPromptTemplate, query, query)
}
