package i18n

// ZhCNMessages 简体中文消息目录
// ZhCNMessages is the Simplified Chinese message catalog
var ZhCNMessages = map[string]string{
	// 提示 - 会话
	"toast.login_success":     "登录成功！",
	"toast.register_success":  "账号创建成功！",
	"toast.login_failed":      "账号或密码错误",
	"toast.register_failed":   "注册失败",
	"toast.logout":            "已退出登录",
	"toast.password_mismatch": "两次输入的密码不一致",
	"toast.password_short":    "密码至少需要 %d 个字符",

	// 提示 - 生成
	"toast.url_empty":          "请输入有效的链接",
	"toast.url_invalid":        "链接格式不正确",
	"toast.generate_failed":    "内容生成失败",
	"toast.generate_empty":     "未生成任何内容，请换一个链接重试。",
	"toast.generate_success":   "内容生成成功！",
	"toast.generate_transport": "内容生成失败，请稍后再试。",

	// 提示 - 内容
	"toast.description_saved": "描述已更新！",
	"toast.save_failed":       "保存描述失败：%v",
	"toast.copied":            "%s 已复制到剪贴板！",
	"toast.copy_failed":       "复制到剪贴板失败",

	// 复制标签
	"label.all_titles":       "全部标题",
	"label.title":            "标题 %d",
	"label.description":      "描述",
	"label.description_html": "描述 (HTML)",
	"label.bullets":          "卖点列表",
	"label.bullet":           "卖点 %d",
	"label.keywords":         "关键词报告",

	// 界面 - 登录
	"auth.login_title":    "登录",
	"auth.register_title": "创建账号",
	"auth.email":          "邮箱",
	"auth.password":       "密码",
	"auth.confirm":        "确认密码",
	"auth.switch_hint":    "ctrl+r 切换 登录 / 注册",
	"auth.signing_in":     "正在登录...",

	// 界面 - 工作台
	"dash.title":          "AI 商品文案生成器",
	"dash.url":            "竞品商品链接",
	"dash.url_hint":       "例如 https://www.amazon.com/dp/B0BP7M5F3M",
	"dash.analyzing":      "正在分析：%s",
	"dash.pending":        "AI 正在分析你的商品...",
	"dash.pending_detail": "生成优化文案需要一点时间",
	"dash.titles":         "推荐商品标题",
	"dash.option":         "方案 %d",
	"dash.description":    "推荐商品描述",
	"dash.bullets":        "核心卖点",
	"dash.keywords":       "关键词与 SEO 报告",
	"dash.editing":        "正在编辑描述（ctrl+s 保存，esc 取消）",
	"dash.empty":          "提交商品链接以生成文案",

	// 界面 - 侧栏 / 状态
	"sidebar.account": "账号",
	"sidebar.tokens":  "Tokens",
	"sidebar.mode":    "模式",
	"status.ready":    "就绪",
	"status.pending":  "生成中...",
	"status.failed":   "失败",
	"status.done":     "完成",
	"status.demo":     "演示",
	"help.auth":       "enter 提交 · tab 下一项 · ctrl+r 切换 · ctrl+c 退出",
	"help.dash":       "enter 生成 · ctrl+e 编辑 · ctrl+t/d/b/k/y 复制 · alt+1-9 复制标题 · ctrl+l 退出登录",
	"help.edit":       "ctrl+s 保存 · esc 取消",

	// 命令（REPL）
	"cmd.help":     "显示可用命令",
	"cmd.login":    "登录：/login <邮箱>",
	"cmd.register": "注册：/register <邮箱>",
	"cmd.logout":   "退出登录",
	"cmd.whoami":   "显示当前账号",
	"cmd.generate": "生成文案：/generate <链接>（或直接粘贴链接）",
	"cmd.show":     "显示当前结果",
	"cmd.keywords": "以列表形式显示关键词报告",
	"cmd.edit":     "编辑描述（单独一行 '.' 结束）",
	"cmd.save":     "保存编辑后的描述",
	"cmd.cancel":   "放弃编辑",
	"cmd.copy":     "复制：/copy titles|title N|description|html|bullets|bullet N|keywords",
	"cmd.tokens":   "显示当前结果的 token 数",
	"cmd.lang":     "切换语言：/lang en|zh-CN",
	"cmd.exit":     "退出程序",

	// REPL
	"repl.not_signed_in": "尚未登录",
	"repl.signed_in_as":  "当前账号：%s",
	"repl.no_result":     "还没有生成内容",
	"repl.unknown":       "未知命令：%s",
	"repl.password":      "密码：",
	"repl.confirm":       "确认密码：",
	"repl.edit_hint":     "输入新的描述，单独一行 '.' 结束",
	"repl.edit_pending":  "描述已暂存；/save 保存或 /cancel 放弃",

	// 启动
	"startup.welcome":   "listingcrew 已启动（api: %s）",
	"startup.demo_mode": "演示模式已开启：登录失败时将回退到本地演示会话",
	"startup.repl_mode": "以 REPL 模式运行",
}
