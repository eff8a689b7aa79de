package role_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/workforce-management/internal/role"
)

func TestRole(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Role Suite")
}

var _ = Describe("Role hierarchy", func() {
	Describe("Level", func() {
		It("should order roles from department head down to employee", func() {
			Expect(role.Level(role.DepartmentHead)).To(Equal(1))
			Expect(role.Level(role.Manager)).To(Equal(2))
			Expect(role.Level(role.AssistantManager)).To(Equal(3))
			Expect(role.Level(role.TeamLead)).To(Equal(4))
			Expect(role.Level(role.Employee)).To(Equal(5))
		})
	})

	Describe("CanManage", func() {
		It("should never let a role manage its own level", func() {
			for _, r := range role.All {
				Expect(role.CanManage(r, r)).To(BeFalse(), "role %s should not manage itself", r)
			}
		})

		It("should let the department head manage every other role", func() {
			for _, r := range role.All {
				if r == role.DepartmentHead {
					continue
				}
				Expect(role.CanManage(role.DepartmentHead, r)).To(BeTrue(), "department head should manage %s", r)
			}
		})

		It("should let a manager manage assistant managers, team leads and employees", func() {
			Expect(role.CanManage(role.Manager, role.AssistantManager)).To(BeTrue())
			Expect(role.CanManage(role.Manager, role.TeamLead)).To(BeTrue())
			Expect(role.CanManage(role.Manager, role.Employee)).To(BeTrue())
			Expect(role.CanManage(role.Manager, role.DepartmentHead)).To(BeFalse())
		})

		It("should give employees no management authority at all", func() {
			for _, r := range role.All {
				Expect(role.CanManage(role.Employee, r)).To(BeFalse())
			}
		})

		It("should never allow managing upward", func() {
			for _, actor := range role.All {
				for _, target := range role.All {
					if role.IsHigherRole(target, actor) {
						Expect(role.CanManage(actor, target)).To(BeFalse(),
							"%s should not manage the more senior %s", actor, target)
					}
				}
			}
		})
	})

	Describe("IsHigherRole", func() {
		It("should rank seniors above juniors", func() {
			Expect(role.IsHigherRole(role.DepartmentHead, role.Manager)).To(BeTrue())
			Expect(role.IsHigherRole(role.TeamLead, role.Manager)).To(BeFalse())
			Expect(role.IsHigherRole(role.Manager, role.Manager)).To(BeFalse())
		})
	})

	Describe("Parse", func() {
		It("should accept every enumeration value", func() {
			for _, r := range role.All {
				parsed, err := role.Parse(r.String())
				Expect(err).ToNot(HaveOccurred())
				Expect(parsed).To(Equal(r))
			}
		})

		It("should reject unknown role strings", func() {
			_, err := role.Parse("INTERN")
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("Permission resolver", func() {
	It("should have an entry for every role in the enumeration", func() {
		for _, r := range role.All {
			ps := role.PermissionsFor(r)
			Expect(ps.Role).To(Equal(r))
			Expect(ps.Capabilities).ToNot(BeEmpty(), "role %s must list capabilities", r)
			Expect(ps.Description).ToNot(BeEmpty(), "role %s must have a description", r)
		}
	})

	It("should describe capabilities only, not grant authority", func() {
		ps := role.PermissionsFor(role.Employee)
		Expect(ps.Capabilities).To(ContainElement("Complete assigned tasks"))
		Expect(role.CanManage(role.Employee, role.Employee)).To(BeFalse())
	})
})
