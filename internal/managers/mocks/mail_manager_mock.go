package mocks

import "github.com/stretchr/testify/mock"

type MockMailManager struct {
	mock.Mock
}

func (m *MockMailManager) SendLicenseKeyMail(email, licenseKey string) error {
	args := m.Called(email, licenseKey)
	return args.Error(0)
}

func (m *MockMailManager) SendResetTokenMail(email, username, resetToken string) error {
	args := m.Called(email, username, resetToken)
	return args.Error(0)
}
