package reconcile

import (
	"context"
	"time"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/IBM/vmware-l4-automation/internal/observability"
	"github.com/IBM/vmware-l4-automation/internal/tasks"
)

var _ = ginkgo.Describe("Reconciler", func() {
	var (
		ctx     context.Context
		fake    *fakeControlPlane
		minter  *staticMinter
		rec     *observability.Recorder
		desired DesiredState
	)

	newReconciler := func(opts ...Option) *Reconciler {
		opts = append([]Option{
			WithObserver(rec),
			WithPollInterval(5 * time.Millisecond),
			WithTaskTimeout(5 * time.Second),
		}, opts...)
		return NewReconciler(fake, fake, minter, opts...)
	}

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		fake = newFakeControlPlane()
		minter = &staticMinter{token: "minted-token"}
		rec = observability.NewRecorder()
		desired = petClinicDesired()
		fake.addSpace("public", []string{"10.0.0.0/24"})
	})

	ginkgo.Context("idempotency", func() {
		ginkgo.It("plans nothing when the remote state already satisfies the lab", func() {
			fake.addCatalog("PetClinic", "A", "B", "C")
			fake.addWorkspace("rg-1", "petclinic-us-south")
			Expect(fake.AllocateIP(ctx, fake.spaces[0].ref.ID, "10.0.0.5")).To(Succeed())

			plan, err := newReconciler().Plan(ctx, desired)
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Actions).To(BeEmpty())
			Expect(plan.Satisfied).To(HaveLen(6))
		})

		ginkgo.It("performs no writes on a second run", func() {
			r := newReconciler()
			first, err := r.Reconcile(ctx, desired)
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Failed()).To(BeEmpty())
			writes := len(fake.writeCalls())

			second, err := r.Reconcile(ctx, desired)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Count(OutcomeSkipped)).To(Equal(6))
			Expect(fake.writeCalls()).To(HaveLen(writes))
			Expect(minter.calls).To(Equal(1))
		})
	})

	ginkgo.Context("convergence", func() {
		ginkgo.It("reaches an empty plan after applying a plan from scratch", func() {
			r := newReconciler()
			res, err := r.Reconcile(ctx, desired)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Failed()).To(BeEmpty())
			Expect(res.PublicIP).To(Equal("10.0.0.5"))
			Expect(res.Variables).To(ContainElement(Variable{Name: "vmware_api_token", Value: "minted-token", Secure: true}))

			plan, err := r.Plan(ctx, desired)
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Empty()).To(BeTrue())
		})

		ginkgo.It("completes a partially provisioned lab", func() {
			fake.addCatalog("PetClinic", "A")

			res, err := newReconciler().Reconcile(ctx, desired)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Failed()).To(BeEmpty())
			Expect(fake.writeCalls()).To(Equal([]string{"upload:B", "upload:C", "create workspace", "allocate ip"}))

			plan, err := newReconciler().Plan(ctx, desired)
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Actions).To(BeEmpty())
		})
	})

	ginkgo.Context("partial failure", func() {
		ginkgo.It("keeps provisioning independent resources when an upload fails", func() {
			fake.fail("upload:B")

			res, err := newReconciler().Reconcile(ctx, desired)
			Expect(err).NotTo(HaveOccurred())

			failed := res.Failed()
			Expect(failed).To(HaveLen(1))
			Expect(failed[0].Action.Target()).To(Equal("B"))
			Expect(res.WorkspaceID).NotTo(BeEmpty())
			Expect(res.PublicIP).To(Equal("10.0.0.5"))

			ginkgo.By("retrying only the failed item on the next run")
			delete(fake.failures, "upload:B")
			plan, err := newReconciler().Plan(ctx, desired)
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Actions).To(Equal([]Action{UploadCatalogItem(desired.Items[1])}))
		})

		ginkgo.It("reports an upload task that ends in error against its action", func() {
			fake.script("upload:C", tasks.Queued, tasks.Running, tasks.Error)

			res, err := newReconciler().Reconcile(ctx, desired)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Failed()).To(HaveLen(1))
			Expect(res.Failed()[0].Err).To(MatchError(ErrTaskFailed))
			Expect(rec.EventsOfType(observability.EventPhaseFailed)).To(HaveLen(1))
		})

		ginkgo.It("times out a stuck task without blocking the run", func() {
			fake.script("upload:A", tasks.Running)

			start := time.Now()
			res, err := newReconciler(WithTaskTimeout(80 * time.Millisecond)).Reconcile(ctx, desired)
			Expect(err).NotTo(HaveOccurred())
			Expect(time.Since(start)).To(BeNumerically("<", time.Second))

			Expect(res.Failed()).To(HaveLen(1))
			Expect(res.Failed()[0].Err).To(MatchError(ErrTaskTimeout))
			Expect(rec.EventsOfType(observability.EventTaskTimedOut)).To(HaveLen(1))
		})
	})

	ginkgo.Context("aborting", func() {
		ginkgo.It("takes no action when two catalogs share the name", func() {
			fake.addCatalog("PetClinic")
			fake.addCatalog("PetClinic")

			res, err := newReconciler().Reconcile(ctx, desired)
			Expect(res).To(BeNil())
			Expect(err).To(MatchError(ErrAmbiguousResource))
			Expect(IsAbort(err)).To(BeTrue())
			Expect(fake.writeCalls()).To(BeEmpty())
			Expect(minter.calls).To(BeZero())
		})

		ginkgo.It("takes no action when the address is outside every IP space", func() {
			desired.PublicIP = "10.0.1.5"

			res, err := newReconciler().Reconcile(ctx, desired)
			Expect(res).To(BeNil())
			Expect(err).To(MatchError(ErrNoIPSpaceForAddress))
			Expect(fake.writeCalls()).To(BeEmpty())
		})

		ginkgo.It("takes no action when a query fails", func() {
			fake.fail("list workspaces")

			_, err := newReconciler().Reconcile(ctx, desired)
			var queryErr *RemoteQueryError
			Expect(err).To(BeAssignableToTypeOf(queryErr))
			Expect(fake.writeCalls()).To(BeEmpty())
		})
	})

	ginkgo.Context("missing item diffing", func() {
		ginkgo.It("uploads B and C when the catalog already holds A", func() {
			fake.addCatalog("PetClinic", "A")

			plan, err := newReconciler().Plan(ctx, desired)
			Expect(err).NotTo(HaveOccurred())

			var uploads []string
			for _, a := range plan.Actions {
				if a.Kind == KindUploadCatalogItem {
					uploads = append(uploads, a.Item.Name)
				}
			}
			Expect(uploads).To(Equal([]string{"B", "C"}))
		})
	})
})
