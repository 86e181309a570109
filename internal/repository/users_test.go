package repository

import (
	"strings"
	"testing"
)

// 更新用户的 SET 列表漏列不会报错，只会让写入被旧值悄悄盖回去，这里逐列把守
func TestUpdateUserQueryCoversMutableColumns(t *testing.T) {
	mutableColumns := []string{
		"password_hash",
		"full_name",
		"email",
		"phone",
		"role",
		"is_active",
	}

	for _, column := range mutableColumns {
		if !strings.Contains(updateUserQuery, column+" = $") {
			t.Errorf("更新语句缺少可变列 %s", column)
		}
	}

	if !strings.Contains(updateUserQuery, "version = version + 1") {
		t.Error("更新语句缺少乐观锁递增")
	}
	if strings.Contains(updateUserQuery, "RETURNING") && strings.Contains(strings.SplitN(updateUserQuery, "RETURNING", 2)[1], "full_name") {
		t.Error("full_name 已在 SET 列表中，不应再由 RETURNING 覆盖")
	}
}
