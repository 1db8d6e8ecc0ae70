package distractor

import "qa-quiz-service/internal/domain"

// DefaultCatalog returns the built-in dictionaries.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Generic: NewDictionary(append(Antonyms(
			[2]string{"增加", "减少"},
			[2]string{"升高", "降低"},
			[2]string{"上升", "下降"},
			[2]string{"正确", "错误"},
			[2]string{"应该", "不应该"},
			[2]string{"需要", "不需要"},
			[2]string{"重要", "不重要"},
			[2]string{"有效", "无效"},
			[2]string{"安全", "危险"},
			[2]string{"允许", "禁止"},
			[2]string{"正常", "异常"},
			[2]string{"不是", "是"},
			[2]string{"increase", "decrease"},
			[2]string{"increases", "decreases"},
			[2]string{"increased", "decreased"},
			[2]string{"higher", "lower"},
			[2]string{"high", "low"},
			[2]string{"above", "below"},
			[2]string{"more", "less"},
			[2]string{"before", "after"},
			[2]string{"permitted", "forbidden"},
			[2]string{"allowed", "prohibited"},
			[2]string{"normal", "abnormal"},
			[2]string{"correct", "incorrect"},
			[2]string{"effective", "ineffective"},
			[2]string{"safe", "unsafe"},
			[2]string{"should", "should not"},
			[2]string{"always", "never"},
			[2]string{"can", "cannot"},
		),
			Substitution{From: "必须", To: "可以"},
			Substitution{From: "能够", To: "不能"},
			Substitution{From: "提高", To: "降低"},
			Substitution{From: "合适", To: "不合适"},
			Substitution{From: "must", To: "need not"},
		)...),
		Domains: map[domain.Domain]Dictionary{
			domain.DomainMedical: NewDictionary(append(Antonyms(
				[2]string{"急性", "慢性"},
				[2]string{"早期", "晚期"},
				[2]string{"轻度", "重度"},
				[2]string{"局部", "全身"},
				[2]string{"少量", "大量"},
				[2]string{"健康", "患病"},
				[2]string{"低血糖", "高血糖"},
				[2]string{"降血糖", "升血糖"},
				[2]string{"acute", "chronic"},
				[2]string{"mild", "severe"},
				[2]string{"healthy", "diseased"},
				[2]string{"hypoglycemia", "hyperglycemia"},
				[2]string{"fasting", "postprandial"},
			),
				Substitution{From: "不能", To: "可以"},
				Substitution{From: "预防", To: "治疗"},
				Substitution{From: "空腹", To: "餐后"},
				Substitution{From: "餐前", To: "餐后"},
				Substitution{From: "胰岛素", To: "胰高血糖素"},
				Substitution{From: "prevention", To: "treatment"},
				Substitution{From: "insulin", To: "glucagon"},
			)...),
			domain.DomainTechnical: NewDictionary(append(Antonyms(
				[2]string{"启动", "关闭"},
				[2]string{"安装", "卸载"},
				[2]string{"连接", "断开"},
				[2]string{"启用", "禁用"},
				[2]string{"创建", "删除"},
				[2]string{"enable", "disable"},
				[2]string{"enabled", "disabled"},
				[2]string{"install", "uninstall"},
				[2]string{"connect", "disconnect"},
				[2]string{"start", "stop"},
				[2]string{"create", "delete"},
			),
				Substitution{From: "开启", To: "禁用"},
			)...),
			domain.DomainBusiness: NewDictionary(Antonyms(
				[2]string{"增长", "下降"},
				[2]string{"盈利", "亏损"},
				[2]string{"成功", "失败"},
				[2]string{"优化", "恶化"},
				[2]string{"扩大", "缩小"},
				[2]string{"加强", "削弱"},
				[2]string{"growth", "decline"},
				[2]string{"profit", "loss"},
				[2]string{"success", "failure"},
				[2]string{"expand", "shrink"},
			)...),
			domain.DomainLegal: NewDictionary(Antonyms(
				[2]string{"合法", "非法"},
				[2]string{"责任", "免责"},
				[2]string{"义务", "权利"},
				[2]string{"强制", "自愿"},
				[2]string{"公开", "保密"},
				[2]string{"正当", "不当"},
				[2]string{"legal", "illegal"},
				[2]string{"lawful", "unlawful"},
				[2]string{"valid", "invalid"},
				[2]string{"mandatory", "voluntary"},
				[2]string{"public", "confidential"},
			)...),
		},
		Topics: map[domain.Domain][]string{
			domain.DomainMedical:   {"糖尿病", "血糖", "胰岛素", "diabetes", "glucose", "insulin"},
			domain.DomainTechnical: {"系统", "网络", "服务器", "system", "network", "server"},
			domain.DomainBusiness:  {"市场", "客户", "收入", "market", "customer", "revenue"},
			domain.DomainLegal:     {"合同", "法律", "条款", "contract", "law", "clause"},
		},
		Fallbacks: map[Script][]string{
			ScriptHan: {
				"以上说法都不正确",
				"需要根据具体情况判断",
				"尚无明确规定",
				"因具体环境而异",
				"需要进一步确认",
			},
			ScriptLatin: {
				"None of the above statements is correct",
				"Insufficient information to determine",
				"Varies by individual case",
				"There is no clear rule on this",
				"Further examination is needed to decide",
			},
		},
	}
}
