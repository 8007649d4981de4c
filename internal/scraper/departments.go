package scraper

import (
	"sort"
	"strings"
)

// WatchedDepartments maps department codes to their names as stored by the
// registration system, with underscores standing in for spaces. Humanize
// before stamping into a record.
var WatchedDepartments = map[int]string{
	20: "مهندسی_عمران",
	21: "مهندسی_صنایع",
	22: "علوم_ریاضی",
	23: "شیمی",
	24: "فیزیک",
	25: "مهندسی_برق",
	26: "مهندسی_شیمی_و_نفت",
	27: "مهندسی_و_علم_مواد",
	28: "مهندسی_مکانیک",
	29: "پژوهشکده_سیاست‏گذاری_علم،_فناوری_و_صنعت",
	30: "مرکز_تربیت_بدنی",
	31: "مرکز_زبان‌ها_و_زبان‌شناسی",
	33: "مرکز_آموزش_مهارت‌های_مهندسی",
	34: "پژوهشکده_علوم_و_فن‌آوری_انرژی،_آب_و_محیط_زیست",
	35: "مرکز_گرافیک_(مرکز_آموزش_مهارت‌های_مهندسی)",
	37: "مرکز_معارف_اسلامی_و_علوم_انسانی",
	38: "بیوشیمی",
	39: "پژوهشکده_الکترونيک",
	40: "مهندسی_کامپیوتر",
	41: "گروه_برنامه‌ریزی_سیستم‌ها",
	42: "گروه_فلسفه_علم",
	43: "مهندسی_سیستم‌های_انرژی",
	44: "مدیریت_و_اقتصاد",
	45: "مهندسی_هوافضا",
	46: "مهندسی_انرژی",
	47: "پژوهشکده_فناوری_اطلاعات_و_ارتباطات_پیشرفته",
	48: "پژوهشکده_علوم_و_فن‌آوری_نانو",
	49: "طرح_مهمان_تکدرس",
	50: "دروس_پایه_و_عمومی_(پردیس_کیش)",
	51: "مهندسی_صنایع_(پردیس_کیش)",
	52: "مهندسی_کامپیوتر_(پردیس_کیش)",
	53: "مهندسی_عمران_(پردیس_کیش)",
	54: "مدیریت_(پردیس_کیش)",
	55: "مهندسی_برق_(پردیس_کیش)",
	56: "مهندسی_نانوفناوری_(پردیس_کیش)",
	57: "مهندسی_مواد_(پردیس_کیش)",
	58: "مهندسی_مکانیک_(پردیس_کیش)",
	59: "زبان‌ها_و_زبان‌شناسی_(پردیس_کیش)",
	61: "طرح_مهمان_تک_درس_(پردیس_کیش)",
	65: "مهندسی_هوافضا_(پردیس_کیش)",
	66: "مهندسی_شیمی_و_نفت_(پردیس_کیش)",
	70: "دروس_پایه_و_عمومی_(پردیس_تهران)",
	71: "طرح_مهمان_تک_درس_(پردیس_تهران)",
	73: "مهندسی_عمران_(پردیس_تهران)",
	76: "مهندسی_نفت_(پردیس_تهران)",
	77: "مهندسی_مواد_(پردیس_تهران)",
	78: "مهندسی_مکانیک_(پردیس_تهران)",
	79: "مهندسی_مکاترونیک_(پردیس_تهران)",
	80: "مهندسی_فناوری_اطلاعات_(پردیس_تهران)",
	81: "مهندسی_کامپیوتر(پردیس_تهران)",
}

// HumanizeDepartment converts a stored department name to its display form.
func HumanizeDepartment(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// WatchedDepartmentCodes returns the watched department codes in ascending
// order so passes visit departments deterministically.
func WatchedDepartmentCodes() []int {
	codes := make([]int, 0, len(WatchedDepartments))
	for code := range WatchedDepartments {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}
