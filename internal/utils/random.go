package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/campusone-dev/digital-campus/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "庆",
	"建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣", "悦",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateUsernameFromChineseName 根据中文姓名的拼音生成一个账号名
func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, py := range pinyinArray {
		length := rand.Intn(len(py)) + 1
		username += py[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

var codeLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ" // 去掉了容易混淆的 I 和 O

// GeneratePaymentCode 生成形如 PAY-XXXX-000000 的支付码
// 唯一性由数据库的唯一约束保证，冲突时由调用方重试
func GeneratePaymentCode() string {
	prefix := make([]byte, 4)
	for i := range prefix {
		prefix[i] = codeLetters[rand.Intn(len(codeLetters))]
	}
	return fmt.Sprintf("PAY-%s-%06d", prefix, rand.Intn(1000000))
}

// GenerateStudentNumber 生成形如 年份+6位数字 的学号
func GenerateStudentNumber() string {
	return fmt.Sprintf("%d%06d", time.Now().Year(), rand.Intn(1000000))
}

func GenerateRandomRole() domain.Role {
	return domain.AllRoles[rand.Intn(len(domain.AllRoles))]
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

var courseNames = []string{
	"计算机科学与技术", "软件工程", "工商管理", "会计学", "金融学",
	"机械工程", "土木工程", "英语", "法学", "临床医学",
}

func GenerateRandomCourse() *domain.Course {
	name := courseNames[rand.Intn(len(courseNames))]
	return &domain.Course{
		Code:        "C" + GenerateRandomID(0, 5),
		Name:        name,
		Description: name + "专业" + GenerateRandomID(10, 5),
		Fee:         int64(rand.Intn(50)+10) * 1000,
		IsActive:    true,
	}
}

var priorities = []domain.AnnouncementPriority{
	domain.AnnouncementPriorityHigh,
	domain.AnnouncementPriorityNormal,
	domain.AnnouncementPriorityLow,
}

var audiences = []domain.Audience{
	domain.AudienceAll,
	domain.AudienceStudents,
	domain.AudienceStaff,
	domain.AudienceAgents,
}

func GenerateRandomAnnouncement() *domain.Announcement {
	a := &domain.Announcement{
		Title:    "公告" + GenerateRandomID(3, 3),
		Content:  "公告内容" + GenerateRandomID(20, 10),
		Priority: priorities[rand.Intn(len(priorities))],
		Audience: audiences[rand.Intn(len(audiences))],
		IsActive: true,
	}

	// 一半的公告带过期时间，其中一部分已经过期，方便测试前端的过滤
	if rand.Intn(2) == 0 {
		expiresAt := time.Now().Add(time.Duration(rand.Intn(14)-7) * 24 * time.Hour)
		a.ExpiresAt = &expiresAt
	}

	return a
}

func GenerateRandomApplication(courseID int64) *domain.Application {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)

	return &domain.Application{
		Reference:     uuid.NewString(),
		ApplicantName: fullName,
		Email:         username + "@example.com",
		Phone:         "1" + GenerateRandomID(0, 10),
		CourseID:      courseID,
		Status:        domain.ApplicationStatusSubmitted,
		PaymentStatus: domain.PaymentStatusPending,
	}
}
