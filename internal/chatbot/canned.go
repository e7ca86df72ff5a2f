package chatbot

import "strings"

// cannedCategory is one fixed conversational pattern: trigger substrings per
// language and a pre-written reply per language. Categories are evaluated in
// slice order and the first hit wins.
type cannedCategory struct {
	Name     string
	Triggers map[Tag][]string
	Response map[Tag]string
}

var cannedCategories = []cannedCategory{
	{
		Name: "greeting",
		Triggers: map[Tag][]string{
			LangEN: {"hi", "hello", "hey", "greetings", "assalamualaikum", "good morning", "good afternoon", "good evening"},
			LangBN: {"সালাম", "হ্যালো", "হাই", "নমস্কার", "আসসালামুয়ালাইকুম", "সুপ্রভাত", "শুভ অপরাহ্ন", "শুভ সন্ধ্যা"},
		},
		Response: map[Tag]string{
			LangEN: "Hello! I'm M873 Assistant. How can I help you today?",
			LangBN: "হ্যালো! আমি M873 সহকারী। আমি কিভাবে আপনাকে সাহায্য করতে পারি?",
		},
	},
	{
		Name: "assistant_name",
		Triggers: map[Tag][]string{
			LangEN: {"what is your name", "who are you", "what should i call you", "your name"},
			LangBN: {"তোমার নাম কি", "তুমি কে", "আপনার নাম কি", "তোমার পরিচয়"},
		},
		Response: map[Tag]string{
			LangEN: "I'm M873 Assistant, your helpful AI companion for M873 platform!",
			LangBN: "আমি M873 সহকারী, M873 প্ল্যাটফর্মের জন্য আপনার সহায়ক এআই সঙ্গী!",
		},
	},
	{
		// Triggers are deliberately narrow: only direct "what is m873"
		// phrasings. Broader platform questions go to the corpus, which
		// carries the richer answers.
		Name: "about_platform",
		Triggers: map[Tag][]string{
			LangEN: {"what is m873", "what's m873"},
			LangBN: {"m873 কি"},
		},
		Response: map[Tag]string{
			LangEN: "M873 is a modern platform with secure access and future-ready features, created by Md. Mahfuzul Islam.",
			LangBN: "M873 একটি আধুনিক প্ল্যাটফর্ম যা নিরাপদ অ্যাক্সেস এবং ভবিষ্যত-প্রস্তুত বৈশিষ্ট্যগুলির সাথে তৈরি করা হয়েছে, Md. Mahfuzul Islam দ্বারা তৈরি।",
		},
	},
	{
		Name: "owner",
		Triggers: map[Tag][]string{
			LangEN: {"who is the owner", "who owns m873", "who created m873", "who made m873", "m873 owner"},
			LangBN: {"মালিক কে", "কে তৈরি করেছে", "m873 মালিক", "কার তৈরি"},
		},
		Response: map[Tag]string{
			LangEN: "M873 is created and operated by Md. Mahfuzul Islam, a student of Electrical and Electronic Engineering at Northern University Bangladesh.",
			LangBN: "M873 প্ল্যাটফর্মটি তৈরি করেছেন Md. Mahfuzul Islam। তিনি Northern University Bangladesh-এ ইলেকট্রিক্যাল এবং ইলেকট্রনিক ইঞ্জিনিয়ারিং বিভাগে অধ্যয়নরত।",
		},
	},
	{
		Name: "location",
		Triggers: map[Tag][]string{
			LangEN: {"where is it located", "where is m873", "where are you located", "m873 location"},
			LangBN: {"কোথায় অবস্থিত", "m873 কোথায়", "কোথা থেকে পরিচালিত"},
		},
		Response: map[Tag]string{
			LangEN: "M873 is operated from Dhaka, Bangladesh, and is available to users everywhere.",
			LangBN: "M873 প্ল্যাটফর্মটি ঢাকা, বাংলাদেশ থেকে পরিচালিত হয় এবং এটি সারা বিশ্বের ব্যবহারকারীদের জন্য উপলব্ধ।",
		},
	},
}

// matches checks the lowercased input against every language's trigger list,
// not just the detected one; mixed-language input still hits the category.
func (c *cannedCategory) matches(lowered string) bool {
	for _, triggers := range c.Triggers {
		for _, trigger := range triggers {
			if trigger != "" && strings.Contains(lowered, trigger) {
				return true
			}
		}
	}
	return false
}

func (c *cannedCategory) response(lang Tag) string {
	if reply, ok := c.Response[lang]; ok {
		return reply
	}
	return c.Response[PrimaryLang]
}
