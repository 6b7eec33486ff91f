package taxonomy

// General returns the fixed 11-category business taxonomy plus the Other
// sentinel. This is the default set for every request that does not select
// an industry pack.
func General() *Set {
	return generalSet
}

var generalSet = &Set{
	Industry: "general",
	Categories: []Category{
		{
			Name:        "Finance",
			Description: "budgets, forecasts, invoices, audits",
			Prompt: `Extract key financial information:
- Document type (budget, forecast, invoice, audit report, financial statement)
- Time period or fiscal year covered
- Currency and monetary amounts (totals, line items, variances)
- Budget categories or cost centers
- Revenue, expenses, profit/loss figures
- Key financial metrics or KPIs
- Approval status and authorized personnel
- Payment terms, due dates, or billing cycles`,
		},
		{
			Name:        "Legal",
			Description: "contracts, compliance, IP, regulatory",
			Prompt: `Extract essential legal information:
- Document type (contract, agreement, compliance doc, IP filing, regulation)
- Parties involved (names, roles, entities)
- Effective dates, terms, and expiration
- Key obligations and rights
- Financial terms and payment obligations
- Governing law and jurisdiction
- Compliance requirements or regulatory standards
- Intellectual property details (patents, trademarks, copyrights)
- Termination or renewal clauses`,
		},
		{
			Name:        "Operations",
			Description: "process docs, logistics, supply chain, facilities",
			Prompt: `Extract operational information:
- Process or procedure name
- Operational scope (facilities, logistics, supply chain)
- Key steps, workflows, or procedures
- Responsible teams or personnel
- Performance metrics and KPIs
- Resource requirements (equipment, materials, personnel)
- Timeline and delivery schedules
- Quality standards and compliance requirements
- Vendor or supplier information`,
		},
		{
			Name:        "HR",
			Description: "hiring, payroll, benefits, employee relations",
			Prompt: `Extract human resources information:
- Document type (policy, procedure, job description, benefits guide)
- Employee information (roles, departments, levels)
- Compensation details (salary ranges, benefits, equity)
- Performance metrics and evaluation criteria
- Training requirements and development programs
- Compliance and regulatory requirements
- Effective dates and review periods
- Approval workflows and authorization levels
- Employee relations policies and procedures`,
		},
		{
			Name:        "Product",
			Description: "roadmaps, specs, R&D, design",
			Prompt: `Extract product information:
- Product name, version, or release information
- Features, capabilities, and specifications
- Target market and user personas
- Development timeline and milestones
- Technical requirements and dependencies
- Research findings and user feedback
- Design principles and UI/UX guidelines
- Competitive analysis and market positioning
- Success metrics and KPIs
- Resource allocation and team assignments`,
		},
		{
			Name:        "Engineering / Tech",
			Description: "code, architecture, infrastructure, IT",
			Prompt: `Extract technical information:
- System or application name
- Technical architecture and infrastructure details
- Code components, APIs, and integrations
- Security requirements and protocols
- Performance specifications and benchmarks
- Development tools and frameworks
- Deployment and configuration details
- Monitoring and maintenance procedures
- Version control and release information
- Technical debt and improvement recommendations`,
		},
		{
			Name:        "Sales",
			Description: "pitches, deal flow, pipeline, CRM exports",
			Prompt: `Extract sales information:
- Customer or prospect information
- Deal size, value, and probability
- Sales stage and pipeline position
- Product or service offerings
- Pricing and discount structures
- Key decision makers and stakeholders
- Competitive landscape and positioning
- Sales timeline and close dates
- Terms and conditions
- Follow-up actions and next steps`,
		},
		{
			Name:        "Marketing / Communications",
			Description: "brand, PR, campaigns, content",
			Prompt: `Extract marketing information:
- Campaign name, type, and objectives
- Target audience and market segments
- Brand guidelines and messaging
- Content type and distribution channels
- Budget allocation and cost metrics
- Performance metrics (CTR, conversion, ROI)
- Timeline and key milestones
- Creative assets and content requirements
- Competitive analysis and market insights
- PR strategy and media coverage details`,
		},
		{
			Name:        "Customer Success / Support",
			Description: "onboarding, training, help docs, feedback",
			Prompt: `Extract customer success information:
- Customer name and account details
- Support ticket or case information
- Product usage and adoption metrics
- Training materials and documentation
- Onboarding processes and milestones
- Customer feedback and satisfaction scores
- Issue resolution steps and timelines
- Escalation procedures and contacts
- Success metrics and health scores
- Renewal and expansion opportunities`,
		},
		{
			Name:        "Strategy / Corp Dev",
			Description: "M&A, partnerships, investor updates, OKRs",
			Prompt: `Extract strategic information:
- Strategic initiative or project name
- Business objectives and success metrics
- Market analysis and competitive landscape
- Partnership or M&A details (target, valuation, terms)
- Investment information and funding rounds
- OKRs (Objectives and Key Results)
- Timeline and key milestones
- Resource requirements and budget
- Risk assessment and mitigation strategies
- Stakeholder information and decision makers`,
		},
		{
			Name:        "Compliance / Risk",
			Description: "audit reports, security, regulatory filings",
			Prompt: `Extract compliance and risk information:
- Regulatory framework or standard (SOX, GDPR, HIPAA, etc.)
- Compliance requirements and controls
- Risk assessment findings and severity levels
- Audit scope, methodology, and findings
- Remediation actions and timelines
- Responsible parties and oversight
- Security measures and protocols
- Incident details and response procedures
- Certification status and renewal dates
- Policy violations and corrective actions`,
		},
		{
			Name:        Other,
			Description: "general documents that don't fit other categories",
			Prompt: `Extract general document information:
- Document type and purpose
- Key topics or subjects covered
- Important dates or deadlines
- Main parties or entities mentioned
- Critical information or decisions
- Document source and context
- Action items or next steps
- Contact information if available`,
		},
	},
	synonyms: map[string]string{
		"financial":              "Finance",
		"engineering":            "Engineering / Tech",
		"tech":                   "Engineering / Tech",
		"technology":             "Engineering / Tech",
		"engineering/technology": "Engineering / Tech",
		"marketing":              "Marketing / Communications",
		"communications":         "Marketing / Communications",
		"customer success":       "Customer Success / Support",
		"customer support":       "Customer Success / Support",
		"support":                "Customer Success / Support",
		"strategy":               "Strategy / Corp Dev",
		"corp dev":               "Strategy / Corp Dev",
		"corporate development":  "Strategy / Corp Dev",
		"strategy/corporate dev": "Strategy / Corp Dev",
		"compliance":             "Compliance / Risk",
		"risk":                   "Compliance / Risk",
		"human resources":        "HR",
		"uncategorized":          Other,
		"unknown":                Other,
		"none":                   Other,
	},
}
